package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"baselineexplorer/internal/catalog"
	"baselineexplorer/internal/present"
	"baselineexplorer/pkg/database"
	"baselineexplorer/pkg/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Set filters and print the visible features",
	Long: "Updates the server's active filters with any of --category, --status or --q " +
		"that were given, then prints the resulting view.",
	RunE: runList,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one feature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := newClient().feature(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), f)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog totals",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := newClient().stats(cmd.Context())
		if err != nil {
			return err
		}
		printStats(cmd.OutOrStdout(), s)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream view updates from the websocket feed",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c := newClient()
		wsURL, err := websocketURL(c.baseURL, "/ws")
		if err != nil {
			return err
		}
		return runWebSocket(cmd.Context(), wsURL, cmd.OutOrStdout())
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the visible features (or all with --all) to a JSON or CSV file",
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <csv>",
	Short: "Load features from a CSV file into the sqlite database",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	listCmd.Flags().String("category", "", "category filter: all, html, css, javascript, api")
	listCmd.Flags().String("status", "", "status filter: all, baseline")
	listCmd.Flags().String("q", "", "search term")
	listCmd.Flags().Bool("json", false, "print raw JSON")

	exportCmd.Flags().String("format", "json", "output format: json or csv")
	exportCmd.Flags().String("out", "data/features.json", "output path")
	exportCmd.Flags().Bool("all", false, "export every record, ignoring the server's filters")

	importCmd.Flags().String("db", "", "sqlite path (default $EXPLORER_DB_PATH or ~/.explorer/features.db)")
}

func runList(cmd *cobra.Command, _ []string) error {
	c := newClient()
	var p filtersPayload
	changed := false
	for _, name := range []string{"category", "status", "q"} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, _ := cmd.Flags().GetString(name)
		switch name {
		case "category":
			p.Category = &v
		case "status":
			p.Status = &v
		case "q":
			p.Q = &v
		}
		changed = true
	}

	var (
		resp viewResponse
		err  error
	)
	if changed {
		resp, err = c.setFilters(cmd.Context(), p)
	} else {
		resp, err = c.view(cmd.Context())
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(out, resp)
	}
	printView(out, resp)
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	path, _ := cmd.Flags().GetString("out")

	c := newClient()
	fetch := c.view
	if all, _ := cmd.Flags().GetBool("all"); all {
		fetch = c.all
	}
	resp, err := fetch(cmd.Context())
	if err != nil {
		return err
	}
	if err := writeFeatures(path, format, resp.Items); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d features to %s\n", len(resp.Items), path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	features, err := catalog.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	cfg := database.DefaultConfig()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Path = p
	}
	db, err := database.OpenAndMigrate(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := catalog.NewRepo(db).Save(cmd.Context(), features); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d features into %s\n", len(features), cfg.Path)
	return nil
}

func writeFeatures(path, format string, items []models.Feature) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	switch format {
	case "json":
		return printJSON(file, items)
	case "csv":
		return catalog.WriteCSV(file, items)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func runWebSocket(ctx context.Context, wsURL string, out io.Writer) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		fmt.Fprint(out, string(msg))
	}
}

func printView(w io.Writer, v viewResponse) {
	if v.Error != "" {
		fmt.Fprintln(w, present.LoadErrorMessage)
		return
	}
	if !v.Loaded {
		fmt.Fprintln(w, present.LoadingMessage)
		return
	}
	printStats(w, v.Stats)
	fmt.Fprintln(w)
	if len(v.Items) == 0 {
		fmt.Fprintln(w, present.NoResultsMessage)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tSTATUS")
	for _, f := range v.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.Name, present.CategoryLabel(f.Category), present.StatusLabel(f.Status))
	}
	_ = tw.Flush()
}

func printStats(w io.Writer, s catalog.Stats) {
	fmt.Fprintf(w, "total %d  baseline %d", s.Total, s.Baseline)
	for _, c := range models.Categories() {
		fmt.Fprintf(w, "  %s %d", present.CategoryLabel(c), s.ByCategory[c])
	}
	fmt.Fprintln(w)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
