package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"baselineexplorer/pkg/models"
)

// HTTPSource fetches a JSON array of features from a URL. A body shaped
// like the /features response is accepted only with scope "all"
// (/features?all=1); a filtered view would truncate the record set.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		URL:    url,
		Client: &http.Client{Timeout: 12 * time.Second},
	}
}

// NewExplorerSource loads every record from another explorer's API.
func NewExplorerSource(baseURL string) *HTTPSource {
	return NewHTTPSource(strings.TrimRight(baseURL, "/") + "/features?all=1")
}

func (s *HTTPSource) Name() string { return "http:" + s.URL }

func (s *HTTPSource) FetchAll(ctx context.Context) ([]models.Feature, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %d: %s", s.URL, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "{") {
		var wrapped struct {
			Items []models.Feature `json:"items"`
			Scope string           `json:"scope"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		if wrapped.Scope != ScopeAll {
			return nil, fmt.Errorf("get %s: %w", s.URL, ErrPartialView)
		}
		return wrapped.Items, nil
	}

	var out []models.Feature
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}

// MergedSource fetches from several sources in order and concatenates
// their records. The first source to supply an id wins. A broken source is
// logged and skipped; the merge fails only when every source fails.
type MergedSource struct {
	Sources []Source
	Logger  *log.Logger
}

func NewMergedSource(sources ...Source) *MergedSource {
	return &MergedSource{Sources: sources}
}

func (m *MergedSource) Name() string {
	names := make([]string, 0, len(m.Sources))
	for _, s := range m.Sources {
		names = append(names, s.Name())
	}
	return "merged(" + strings.Join(names, ",") + ")"
}

func (m *MergedSource) FetchAll(ctx context.Context) ([]models.Feature, error) {
	logger := m.Logger
	if logger == nil {
		logger = log.Default()
	}

	var (
		out  []models.Feature
		seen = make(map[string]struct{})
		errs []error
	)
	for _, src := range m.Sources {
		records, err := src.FetchAll(ctx)
		if err != nil {
			logger.Printf("[loader] source %s error: %v", src.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		for _, r := range records {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			out = append(out, r)
		}
	}
	if len(m.Sources) > 0 && len(errs) == len(m.Sources) {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
