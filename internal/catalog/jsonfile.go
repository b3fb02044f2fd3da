package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"baselineexplorer/pkg/models"
)

// JSONFileSource reads a JSON array of features from disk, in the same
// shape the API serves them.
type JSONFileSource struct {
	Path string
}

func (s JSONFileSource) Name() string { return "json:" + s.Path }

func (s JSONFileSource) FetchAll(ctx context.Context) ([]models.Feature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	var out []models.Feature
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return out, nil
}
