package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"baselineexplorer/pkg/models"
)

// Repo stores features in the sqlite `features` table. It doubles as a
// Source: FetchAll returns rows in insertion order.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Name() string { return "sqlite" }

func (r *Repo) FetchAll(ctx context.Context) ([]models.Feature, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, category, status, description, mdn_url
		FROM features
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	var out []models.Feature
	for rows.Next() {
		var (
			f           models.Feature
			category    string
			status      string
			description sql.NullString
			mdnURL      sql.NullString
		)
		if err := rows.Scan(&f.ID, &f.Name, &category, &status, &description, &mdnURL); err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		f.Category = models.Category(category)
		f.Status = models.Status(status)
		f.Description = description.String
		f.MDNURL = mdnURL.String
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM features`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return n, nil
}

// Save upserts features in one transaction. An existing id keeps its
// original position.
func (r *Repo) Save(ctx context.Context, features []models.Feature) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO features (id, name, category, status, description, mdn_url)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  name = excluded.name,
		  category = excluded.category,
		  status = excluded.status,
		  description = excluded.description,
		  mdn_url = excluded.mdn_url
	`)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for _, f := range features {
		if _, err := stmt.ExecContext(ctx,
			f.ID, f.Name, string(f.Category), string(f.Status),
			nullString(f.Description), nullString(f.MDNURL),
		); err != nil {
			return fmt.Errorf("exec upsert for %s: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// SeedSample fills an empty table with the demo data set. It reports
// whether anything was written.
func (r *Repo) SeedSample(ctx context.Context) (bool, error) {
	n, err := r.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := r.Save(ctx, SampleFeatures()); err != nil {
		return false, err
	}
	return true, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
