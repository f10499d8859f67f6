package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
	"github.com/Kropiunig/domain-radar/internal/platform/store"
	"github.com/Kropiunig/domain-radar/internal/services/scan/domain"
)

type fakeCH struct {
	execs   []string
	inserts []struct {
		table string
		cols  []string
		rows  [][]any
	}
	insertErr error
}

func (f *fakeCH) Insert(_ context.Context, table string, cols []string, rows [][]any) error {
	f.inserts = append(f.inserts, struct {
		table string
		cols  []string
		rows  [][]any
	}{table, cols, rows})
	return f.insertErr
}

func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.execs = append(f.execs, sql)
	return nil
}

func (f *fakeCH) Close() error { return nil }

func TestHistoryEnsuresTable(t *testing.T) {
	ch := &fakeCH{}
	if _, err := NewHistory(context.Background(), ch); err != nil {
		t.Fatalf("NewHistory: %v", err)
	}
	if len(ch.execs) != 1 || !strings.Contains(ch.execs[0], "CREATE TABLE IF NOT EXISTS verdict_history") {
		t.Fatalf("ddl = %v", ch.execs)
	}
}

func TestHistoryAppendsRows(t *testing.T) {
	ch := &fakeCH{}
	h, err := NewHistory(context.Background(), ch)
	if err != nil {
		t.Fatalf("NewHistory: %v", err)
	}

	when := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := []domain.HistoryRow{
		{Domain: "aa.io", Zone: ".io", Strategy: "two-letter", Method: "bulk", Availability: "available", Price: 60, CheckedAt: when},
		{Domain: "bb.io", Zone: ".io", Strategy: "two-letter", Method: "rdap", Availability: "taken", CheckedAt: when},
	}
	if err := h.AppendVerdicts(context.Background(), "run-9", rows); err != nil {
		t.Fatalf("AppendVerdicts: %v", err)
	}
	if len(ch.inserts) != 1 {
		t.Fatalf("inserts = %d", len(ch.inserts))
	}
	ins := ch.inserts[0]
	if ins.table != "verdict_history" || len(ins.rows) != 2 {
		t.Fatalf("insert = %+v", ins)
	}
	if len(ins.cols) != len(ins.rows[0]) {
		t.Fatalf("cols %d vs row width %d", len(ins.cols), len(ins.rows[0]))
	}
	if ins.rows[0][0] != "run-9" || ins.rows[1][1] != "bb.io" {
		t.Fatalf("row payload = %+v", ins.rows)
	}
}

func TestHistoryEmptyBatchSkipsNetwork(t *testing.T) {
	ch := &fakeCH{}
	h, err := NewHistory(context.Background(), ch)
	if err != nil {
		t.Fatalf("NewHistory: %v", err)
	}
	if err := h.AppendVerdicts(context.Background(), "run-9", nil); err != nil {
		t.Fatalf("AppendVerdicts(nil): %v", err)
	}
	if len(ch.inserts) != 0 {
		t.Fatalf("empty batch reached the sink: %+v", ch.inserts)
	}
}

func TestHistoryInsertFailureWrapped(t *testing.T) {
	ch := &fakeCH{insertErr: perr.Unavailablef("ch down")}
	h, err := NewHistory(context.Background(), ch)
	if err != nil {
		t.Fatalf("NewHistory: %v", err)
	}
	err = h.AppendVerdicts(context.Background(), "run-9", []domain.HistoryRow{{Domain: "aa.io"}})
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("err = %v, want db code", err)
	}
}

func TestHistoryRequiresSeam(t *testing.T) {
	if _, err := NewHistory(context.Background(), nil); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}
