package catalog

import (
	"context"
	"fmt"
	"log"
	"sync"

	"baselineexplorer/pkg/models"
)

// Source supplies the initial record set. Each source maps its own data
// format into models.Feature; values are not assumed to be validated.
type Source interface {
	Name() string
	FetchAll(ctx context.Context) ([]models.Feature, error)
}

// Pending is a single-resolution load. Done is closed once the source has
// answered and the catalog has been populated or marked failed.
type Pending struct {
	done chan struct{}
	once sync.Once
	err  error
}

func (p *Pending) Done() <-chan struct{} { return p.done }

// Err returns the LoadFailure after Done is closed, nil before.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the load resolves or ctx ends. Giving up on the wait
// does not cancel the load.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pending) resolve(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// StartLoad fetches from src in the background and populates cat exactly
// once. There is no retry: a failure is recorded on the catalog as a
// LoadFailure and surfaced through the returned Pending.
func StartLoad(ctx context.Context, cat *Catalog, src Source, logger *log.Logger) *Pending {
	if logger == nil {
		logger = log.Default()
	}
	p := &Pending{done: make(chan struct{})}

	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: source %s panicked: %v", ErrLoadFailed, src.Name(), r)
				cat.Fail(err)
			}
			p.resolve(err)
		}()

		logger.Printf("[loader] fetching from %s", src.Name())
		records, ferr := src.FetchAll(ctx)
		if ferr != nil {
			err = fmt.Errorf("%w: source %s: %w", ErrLoadFailed, src.Name(), ferr)
			cat.Fail(err)
			return
		}
		err = cat.Load(records)
	}()

	return p
}
