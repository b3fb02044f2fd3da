// Package present turns catalog views into user-facing text and markup.
package present

import (
	"strings"

	"baselineexplorer/pkg/models"
)

const (
	NoResultsMessage = "No features match your current filters. Try adjusting your search or filters."
	LoadErrorMessage = "Error loading features. Please check the console for details."
	LoadingMessage   = "Loading features..."
)

func CategoryLabel(c models.Category) string {
	return strings.ToUpper(string(c))
}

func StatusLabel(s models.Status) string {
	if s == models.StatusBaseline {
		return "Baseline"
	}
	return "Not Baseline"
}
