package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
	"github.com/Kropiunig/domain-radar/internal/platform/store"
	"github.com/Kropiunig/domain-radar/internal/services/scan/domain"
)

var pgSchema = []string{
	`CREATE TABLE IF NOT EXISTS checked_domains (
		domain text PRIMARY KEY,
		added_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS found_domains (
		seq bigint GENERATED ALWAYS AS IDENTITY,
		domain text PRIMARY KEY,
		strategy text NOT NULL DEFAULT '',
		zone text NOT NULL DEFAULT '',
		price double precision NOT NULL DEFAULT 0,
		premium boolean NOT NULL DEFAULT false,
		checked_at timestamptz NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS run_status (
		id smallint PRIMARY KEY CHECK (id = 1),
		run_id text NOT NULL,
		running boolean NOT NULL,
		started_at timestamptz NOT NULL,
		last_completed timestamptz NOT NULL,
		checked integer NOT NULL,
		found integer NOT NULL,
		skipped integer NOT NULL,
		rounds integer NOT NULL,
		duration_ms bigint NOT NULL
	)`,
}

// Postgres persists run state in three tables. The checked set and the
// found registry grow append-only; findings keep discovery order via an
// identity column
type Postgres struct {
	q store.TxRunner
}

// NewPostgres ensures the schema and wraps the sql seam
func NewPostgres(ctx context.Context, q store.TxRunner) (*Postgres, error) {
	if q == nil {
		return nil, perr.InvalidArgf("postgres seam required")
	}
	for _, ddl := range pgSchema {
		if _, err := q.Exec(ctx, ddl); err != nil {
			return nil, perr.FromPostgres(err, "ensure scan schema")
		}
	}
	return &Postgres{q: q}, nil
}

// LoadChecked reads the full checked set
func (p *Postgres) LoadChecked(ctx context.Context) ([]string, error) {
	const q = `SELECT domain FROM checked_domains ORDER BY domain`
	rows, err := p.q.Query(ctx, q)
	if err != nil {
		return nil, perr.FromPostgres(err, "load checked set")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, perr.FromPostgres(err, "scan checked domain")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// LoadFound reads findings in their discovery order
func (p *Postgres) LoadFound(ctx context.Context) ([]domain.Finding, error) {
	const q = `
		SELECT domain, strategy, zone, price, premium, checked_at
		FROM found_domains
		ORDER BY seq`
	rows, err := p.q.Query(ctx, q)
	if err != nil {
		return nil, perr.FromPostgres(err, "load findings")
	}
	defer rows.Close()

	var out []domain.Finding
	for rows.Next() {
		var f domain.Finding
		if err := rows.Scan(&f.Domain, &f.Strategy, &f.Zone, &f.Price, &f.Premium, &f.CheckedAt); err != nil {
			return nil, perr.FromPostgres(err, "scan finding")
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// LoadStatus reads the single status row; absent means zero
func (p *Postgres) LoadStatus(ctx context.Context) (domain.RunStatus, error) {
	const q = `
		SELECT run_id, running, started_at, last_completed,
			checked, found, skipped, rounds, duration_ms
		FROM run_status WHERE id = 1`
	var st domain.RunStatus
	var durMS int64
	err := p.q.QueryRow(ctx, q).Scan(
		&st.RunID, &st.Running, &st.StartedAt, &st.LastCompleted,
		&st.Checked, &st.Found, &st.Skipped, &st.Rounds, &durMS,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.RunStatus{}, nil
	}
	if err != nil {
		return domain.RunStatus{}, perr.FromPostgres(err, "load run status")
	}
	st.Duration = time.Duration(durMS) * time.Millisecond
	return st, nil
}

// SaveChecked inserts the members that joined since the last save; the
// snapshot is ignored because rows are never removed
func (p *Postgres) SaveChecked(ctx context.Context, _ []string, added []string) error {
	if len(added) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO checked_domains (domain) VALUES `)
	args := make([]any, 0, len(added))
	for i, d := range added {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "($%d)", i+1)
		args = append(args, d)
	}
	sb.WriteString(` ON CONFLICT (domain) DO NOTHING`)
	if _, err := p.q.Exec(ctx, sb.String(), args...); err != nil {
		return perr.FromPostgres(err, "save checked set")
	}
	return nil
}

// SaveFound inserts findings not yet present; existing rows keep their
// original values and position
func (p *Postgres) SaveFound(ctx context.Context, findings []domain.Finding) error {
	if len(findings) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO found_domains
		(domain, strategy, zone, price, premium, checked_at)
		VALUES `)
	args := make([]any, 0, len(findings)*6)
	for i, f := range findings {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*6 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d)", base, base+1, base+2, base+3, base+4, base+5)
		args = append(args, f.Domain, f.Strategy, f.Zone, f.Price, f.Premium, f.CheckedAt)
	}
	sb.WriteString(` ON CONFLICT (domain) DO NOTHING`)
	if _, err := p.q.Exec(ctx, sb.String(), args...); err != nil {
		return perr.FromPostgres(err, "save findings")
	}
	return nil
}

// SaveStatus upserts the single status row
func (p *Postgres) SaveStatus(ctx context.Context, st domain.RunStatus) error {
	const q = `
		INSERT INTO run_status
			(id, run_id, running, started_at, last_completed,
			checked, found, skipped, rounds, duration_ms)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			running = EXCLUDED.running,
			started_at = EXCLUDED.started_at,
			last_completed = EXCLUDED.last_completed,
			checked = EXCLUDED.checked,
			found = EXCLUDED.found,
			skipped = EXCLUDED.skipped,
			rounds = EXCLUDED.rounds,
			duration_ms = EXCLUDED.duration_ms`
	_, err := p.q.Exec(ctx, q,
		st.RunID, st.Running, st.StartedAt, st.LastCompleted,
		st.Checked, st.Found, st.Skipped, st.Rounds, st.Duration.Milliseconds(),
	)
	if err != nil {
		return perr.FromPostgres(err, "save run status")
	}
	return nil
}
