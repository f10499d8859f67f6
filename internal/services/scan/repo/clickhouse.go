package repo

import (
	"context"

	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
	"github.com/Kropiunig/domain-radar/internal/platform/store"
	"github.com/Kropiunig/domain-radar/internal/services/scan/domain"
)

const historyTable = "verdict_history"

var historyCols = []string{
	"run_id", "domain", "zone", "strategy",
	"method", "availability", "premium", "price", "checked_at",
}

const historyDDL = `
	CREATE TABLE IF NOT EXISTS verdict_history (
		run_id String,
		domain String,
		zone String,
		strategy String,
		method String,
		availability String,
		premium Bool,
		price Float64,
		checked_at DateTime64(3)
	)
	ENGINE = MergeTree
	ORDER BY (checked_at, domain)`

// History appends every verdict to clickhouse for later analysis.
// The sink is write-only from the scanner's point of view
type History struct {
	ch store.Clickhouse
}

// NewHistory ensures the table and wraps the seam
func NewHistory(ctx context.Context, ch store.Clickhouse) (*History, error) {
	if ch == nil {
		return nil, perr.InvalidArgf("clickhouse seam required")
	}
	if err := ch.Exec(ctx, historyDDL); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "ensure verdict history table")
	}
	return &History{ch: ch}, nil
}

// AppendVerdicts writes one row per verdict
func (h *History) AppendVerdicts(ctx context.Context, runID string, rows []domain.HistoryRow) error {
	if len(rows) == 0 {
		return nil
	}
	batch := make([][]any, len(rows))
	for i, r := range rows {
		batch[i] = []any{
			runID, r.Domain, r.Zone, r.Strategy,
			r.Method, r.Availability, r.Premium, r.Price, r.CheckedAt,
		}
	}
	if err := h.ch.Insert(ctx, historyTable, historyCols, batch); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "append verdict history")
	}
	return nil
}
