package stats

import (
	"context"
	"database/sql"
	"fmt"

	"chartdeck/internal/catalog"
)

const schema = `
CREATE TABLE IF NOT EXISTS chart_values (
	series_idx INTEGER NOT NULL,
	pos        INTEGER NOT NULL,
	value      DOUBLE  NOT NULL
)`

const summaryQuery = `
SELECT series_idx,
       count(value),
       avg(value),
       stddev_samp(value),
       min(value),
       max(value)
FROM chart_values
GROUP BY series_idx
ORDER BY series_idx`

// Summary describes one series of a descriptor.
type Summary struct {
	Series string  `json:"series"`
	Count  int64   `json:"count"`
	Mean   float64 `json:"mean"`
	// StdDev is the sample standard deviation, nil below two values.
	StdDev *float64 `json:"std_dev,omitempty"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
}

// Repo runs summary queries against a DuckDB client.
type Repo struct {
	client *DuckDBClient
}

// NewRepo prepares the scratch table.
func NewRepo(ctx context.Context, client *DuckDBClient) (*Repo, error) {
	if _, err := client.db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create chart_values: %w", err)
	}
	return &Repo{client: client}, nil
}

// Open is NewDuckDBClient followed by NewRepo.
func Open(ctx context.Context, dsn string, opts ...DuckDBOption) (*Repo, error) {
	client, err := NewDuckDBClient(dsn, opts...)
	if err != nil {
		return nil, err
	}
	repo, err := NewRepo(ctx, client)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return repo, nil
}

func (r *Repo) Close() error { return r.client.Close() }

// Values are the numbers a series contributes: its values, or the y of
// each point for scatter series.
func Values(s catalog.Series) []float64 {
	if len(s.Values) > 0 || len(s.Points) == 0 {
		return s.Values
	}
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Y
	}
	return out
}

// Summarize returns one Summary per series of d, in series order. Series
// without values get a zero Count.
func (r *Repo) Summarize(ctx context.Context, d catalog.Descriptor) ([]Summary, error) {
	ctx, cancel := r.client.context(ctx)
	defer cancel()

	out := make([]Summary, len(d.Config.Series))
	for i, s := range d.Config.Series {
		out[i].Series = s.Label
	}

	tx, err := r.client.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chart_values"); err != nil {
		return nil, fmt.Errorf("clear chart_values: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO chart_values (series_idx, pos, value) VALUES (?, ?, ?)")
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range d.Config.Series {
		for j, v := range Values(s) {
			if _, err := stmt.ExecContext(ctx, i, j, v); err != nil {
				return nil, fmt.Errorf("insert %s[%d]: %w", s.Label, j, err)
			}
		}
	}

	rows, err := tx.QueryContext(ctx, summaryQuery)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			idx    int
			sum    Summary
			stddev sql.NullFloat64
		)
		if err := rows.Scan(&idx, &sum.Count, &sum.Mean, &stddev, &sum.Min, &sum.Max); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		if idx < 0 || idx >= len(out) {
			continue
		}
		sum.Series = out[idx].Series
		if stddev.Valid {
			v := stddev.Float64
			sum.StdDev = &v
		}
		out[idx] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
