package catalog

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"baselineexplorer/pkg/models"
)

var (
	// ErrLoadFailed marks the one-time load step failing. The session has
	// no retry; the presentation layer shows a static message instead.
	ErrLoadFailed  = errors.New("could not load features")
	ErrNotLoaded   = errors.New("catalog not loaded")
	ErrDuplicateID = errors.New("duplicate feature id")
	ErrNotFound    = errors.New("feature not found")
	ErrPartialView = errors.New("response is a filtered view, not the full record set")
)

// Filters is the active filter triple.
type Filters struct {
	Category models.CategoryFilter `json:"category"`
	Status   models.StatusFilter   `json:"status"`
	Search   string                `json:"q"`
}

// DefaultFilters returns the initial state: everything visible.
func DefaultFilters() Filters {
	return Filters{Category: models.CategoryFilterAll, Status: models.StatusFilterAll}
}

// Stats are computed over the full record set, never the filtered view.
type Stats struct {
	Total      int                     `json:"total"`
	Baseline   int                     `json:"baseline"`
	ByCategory map[models.Category]int `json:"by_category"`
}

// View is the snapshot handed to subscribers after every state change.
type View struct {
	Features  []models.Feature `json:"items"`
	Stats     Stats            `json:"stats"`
	Filters   Filters          `json:"filters"`
	Loaded    bool             `json:"loaded"`
	LoadError string           `json:"load_error,omitempty"`
	Version   uint64           `json:"version"`
}

// Catalog owns the feature records and the filter state. The records are
// set once by Load; filters change in response to user actions.
type Catalog struct {
	// notifyMu is held from mutation through delivery so subscribers see
	// views in the order the changes were made.
	notifyMu sync.Mutex

	mu      sync.RWMutex
	version uint64
	records []models.Feature
	byID    map[string]int
	filters Filters
	loaded  bool
	loadErr error
	visible []models.Feature
	subs    []func(View)
	logger  *log.Logger
}

// New returns an empty catalog with default filters.
func New(logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	return &Catalog{
		byID:    make(map[string]int),
		filters: DefaultFilters(),
		logger:  logger,
	}
}

// Subscribe registers fn to be called with a fresh View after every change.
// Callbacks run synchronously on the mutating goroutine, one change at a
// time. They may read the catalog but must not mutate it.
func (c *Catalog) Subscribe(fn func(View)) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

// Load replaces the record set and resets the filters to their defaults.
// Records whose category or status fall outside the closed enumerations are
// skipped so filtering never matches them; a duplicate id fails the whole
// load.
func (c *Catalog) Load(records []models.Feature) error {
	kept := make([]models.Feature, 0, len(records))
	byID := make(map[string]int, len(records))
	for _, r := range records {
		if !r.Category.Valid() || !r.Status.Valid() {
			c.logger.Printf("[catalog] skipping %q: category=%q status=%q", r.ID, r.Category, r.Status)
			continue
		}
		if _, dup := byID[r.ID]; dup {
			err := fmt.Errorf("%w: %w %q", ErrLoadFailed, ErrDuplicateID, r.ID)
			c.Fail(err)
			return err
		}
		byID[r.ID] = len(kept)
		kept = append(kept, r)
	}

	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.records = kept
	c.byID = byID
	c.filters = DefaultFilters()
	c.loaded = true
	c.loadErr = nil
	c.recompute()
	v := c.commit()
	c.mu.Unlock()

	c.logger.Printf("[catalog] loaded %d features", len(kept))
	c.deliver(v)
	return nil
}

// Fail records a LoadFailure. The catalog stays empty.
func (c *Catalog) Fail(err error) {
	if !errors.Is(err, ErrLoadFailed) {
		err = fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.loadErr = err
	v := c.commit()
	c.mu.Unlock()

	c.logger.Printf("[catalog] load error: %v", err)
	c.deliver(v)
}

func (c *Catalog) SetCategoryFilter(v string) {
	c.update(func(f *Filters) { f.Category = models.ParseCategoryFilter(v) })
}

func (c *Catalog) SetStatusFilter(v string) {
	c.update(func(f *Filters) { f.Status = models.ParseStatusFilter(v) })
}

// SetSearchTerm stores the term lower-cased; matching is case-insensitive.
func (c *Catalog) SetSearchTerm(v string) {
	c.update(func(f *Filters) { f.Search = strings.ToLower(v) })
}

// SetFilters applies all three axes with a single recompute.
func (c *Catalog) SetFilters(f Filters) {
	c.update(func(cur *Filters) {
		cur.Category = models.ParseCategoryFilter(string(f.Category))
		cur.Status = models.ParseStatusFilter(string(f.Status))
		cur.Search = strings.ToLower(f.Search)
	})
}

func (c *Catalog) update(fn func(*Filters)) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	fn(&c.filters)
	c.recompute()
	v := c.commit()
	c.mu.Unlock()

	c.deliver(v)
}

func (c *Catalog) Filters() Filters {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filters
}

// VisibleFeatures returns the filtered records in load order. It is empty
// until the catalog is loaded.
func (c *Catalog) VisibleFeatures() []models.Feature {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Feature, len(c.visible))
	copy(out, c.visible)
	return out
}

func (c *Catalog) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats()
}

// Records returns every loaded record in load order, ignoring filters.
func (c *Catalog) Records() []models.Feature {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Feature, len(c.records))
	copy(out, c.records)
	return out
}

// Get looks a record up by id regardless of the active filters.
func (c *Catalog) Get(id string) (models.Feature, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return models.Feature{}, ErrNotLoaded
	}
	i, ok := c.byID[id]
	if !ok {
		return models.Feature{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.records[i], nil
}

func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// LoadErr returns the LoadFailure, if any.
func (c *Catalog) LoadErr() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr
}

// View returns a consistent snapshot of the whole state.
func (c *Catalog) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view()
}

func (c *Catalog) view() View {
	v := View{
		Features: make([]models.Feature, len(c.visible)),
		Stats:    c.stats(),
		Filters:  c.filters,
		Loaded:   c.loaded,
		Version:  c.version,
	}
	copy(v.Features, c.visible)
	if c.loadErr != nil {
		v.LoadError = c.loadErr.Error()
	}
	return v
}

// commit bumps the version and snapshots the new state. mu must be held.
func (c *Catalog) commit() View {
	c.version++
	return c.view()
}

// deliver runs the subscribers. notifyMu must be held, mu must not.
func (c *Catalog) deliver(v View) {
	c.mu.RLock()
	subs := c.subs
	c.mu.RUnlock()
	for _, fn := range subs {
		fn(v)
	}
}

// recompute must be called with mu held.
func (c *Catalog) recompute() {
	c.visible = c.visible[:0:0]
	for _, r := range c.records {
		if matches(r, c.filters) {
			c.visible = append(c.visible, r)
		}
	}
}

func (c *Catalog) stats() Stats {
	s := Stats{ByCategory: make(map[models.Category]int, 4)}
	for _, cat := range models.Categories() {
		s.ByCategory[cat] = 0
	}
	for _, r := range c.records {
		s.Total++
		if r.Status == models.StatusBaseline {
			s.Baseline++
		}
		s.ByCategory[r.Category]++
	}
	return s
}

func matches(r models.Feature, f Filters) bool {
	if !f.Category.Matches(r.Category) {
		return false
	}
	if !f.Status.Matches(r.Status) {
		return false
	}
	if f.Search != "" &&
		!strings.Contains(strings.ToLower(r.Name), f.Search) &&
		!strings.Contains(strings.ToLower(r.Description), f.Search) {
		return false
	}
	return true
}
