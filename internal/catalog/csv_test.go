package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baselineexplorer/pkg/models"
)

func TestCSVRoundTripOfSample(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, SampleFeatures()))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, SampleFeatures(), got)
}

func TestReadCSVColumnsByName(t *testing.T) {
	in := strings.Join([]string{
		"Status,ID,Name,Category",
		"Baseline,css-grid,CSS Grid,CSS",
		",,missing id,css",
		"not-baseline,short,Short",
	}, "\n")

	got, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.Feature{
		ID:       "css-grid",
		Name:     "CSS Grid",
		Category: models.CategoryCSS,
		Status:   models.StatusBaseline,
	}, got[0])
	assert.Equal(t, models.Category(""), got[1].Category)
}

func TestReadCSVRequiresIDAndName(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("id,category\nx,css\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}
