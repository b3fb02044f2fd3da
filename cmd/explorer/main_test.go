package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baselineexplorer/internal/catalog"
	"baselineexplorer/pkg/database"
	"baselineexplorer/pkg/models"
)

func startAPI(t *testing.T) *httptest.Server {
	t.Helper()
	cat := catalog.New(log.New(io.Discard, "", 0))
	require.NoError(t, cat.Load(catalog.SampleFeatures()))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	catalog.NewHandler(cat).RegisterRoutes(r.Group(""))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		for _, name := range []string{"category", "status", "q", "json"} {
			if f := listCmd.Flags().Lookup(name); f != nil {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			}
		}
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestListSetsFilters(t *testing.T) {
	srv := startAPI(t)

	out := run(t, "--api", srv.URL, "list", "--category", "css", "--status", "baseline")
	assert.Contains(t, out, "total 26  baseline 24")
	assert.Contains(t, out, "css-grid")
	assert.NotContains(t, out, "css-container-queries")
	assert.NotContains(t, out, "html-article")
}

func TestListNoResults(t *testing.T) {
	srv := startAPI(t)

	out := run(t, "--api", srv.URL, "list", "--q", "definitely-not-here")
	assert.Contains(t, out, "No features match")
}

func TestShow(t *testing.T) {
	srv := startAPI(t)

	out := run(t, "--api", srv.URL, "show", "api-fetch")
	var f models.Feature
	require.NoError(t, json.Unmarshal([]byte(out), &f))
	assert.Equal(t, "Fetch API", f.Name)
}

func TestExportCSV(t *testing.T) {
	srv := startAPI(t)
	path := filepath.Join(t.TempDir(), "out", "features.csv")

	run(t, "--api", srv.URL, "list", "--category", "css")
	run(t, "--api", srv.URL, "export", "--all", "--format", "csv", "--out", path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := catalog.ReadCSV(f)
	require.NoError(t, err)
	assert.Equal(t, catalog.SampleFeatures(), got)
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "in.csv")
	dbPath := filepath.Join(dir, "features.db")
	require.NoError(t, os.WriteFile(csvPath, []byte(strings.Join([]string{
		"id,name,category,status",
		"css-grid,CSS Grid,css,baseline",
		"api-webgpu,WebGPU API,api,not-baseline",
	}, "\n")), 0o644))

	out := run(t, "import", csvPath, "--db", dbPath)
	assert.Contains(t, out, "imported 2 features")

	db, err := database.OpenAndMigrate(database.Config{Path: dbPath})
	require.NoError(t, err)
	defer db.Close()
	got, err := catalog.NewRepo(db).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.StatusNotBaseline, got[1].Status)
}

func TestWebsocketURL(t *testing.T) {
	u, err := websocketURL("https://explorer.example.com/base", "/ws")
	require.NoError(t, err)
	assert.Equal(t, "wss://explorer.example.com/ws", u)

	u, err = websocketURL("http://localhost:8080", "/ws")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8080/ws", u)
}
