package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
	"github.com/Kropiunig/domain-radar/internal/services/scan/domain"
)

func TestFileRoundtrip(t *testing.T) {
	ctx := context.Background()
	st, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	checked, err := st.LoadChecked(ctx)
	if err != nil {
		t.Fatalf("LoadChecked on empty dir: %v", err)
	}
	if len(checked) != 0 {
		t.Fatalf("fresh dir holds %v", checked)
	}

	if err := st.SaveChecked(ctx, []string{"aa.io", "bb.io"}, []string{"aa.io", "bb.io"}); err != nil {
		t.Fatalf("SaveChecked: %v", err)
	}
	checked, err = st.LoadChecked(ctx)
	if err != nil {
		t.Fatalf("LoadChecked: %v", err)
	}
	if len(checked) != 2 || checked[0] != "aa.io" {
		t.Fatalf("checked = %v", checked)
	}

	when := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fs := []domain.Finding{
		{Domain: "zz.io", Strategy: "two-letter", Zone: ".io", Price: 60, CheckedAt: when},
		{Domain: "aa.dev", Strategy: "keywords", Zone: ".dev", Price: 12, Premium: true, CheckedAt: when},
	}
	if err := st.SaveFound(ctx, fs); err != nil {
		t.Fatalf("SaveFound: %v", err)
	}
	got, err := st.LoadFound(ctx)
	if err != nil {
		t.Fatalf("LoadFound: %v", err)
	}
	if len(got) != 2 || got[0].Domain != "zz.io" || got[1].Domain != "aa.dev" {
		t.Fatalf("findings order lost: %+v", got)
	}
	if !got[1].Premium || got[1].Price != 12 || !got[0].CheckedAt.Equal(when) {
		t.Fatalf("finding fields lost: %+v", got)
	}

	status := domain.RunStatus{RunID: "r1", Running: true, StartedAt: when, Checked: 2, Found: 2, Rounds: 1, Duration: 3 * time.Second}
	if err := st.SaveStatus(ctx, status); err != nil {
		t.Fatalf("SaveStatus: %v", err)
	}
	back, err := st.LoadStatus(ctx)
	if err != nil {
		t.Fatalf("LoadStatus: %v", err)
	}
	if back.RunID != "r1" || !back.Running || back.Duration != 3*time.Second {
		t.Fatalf("status = %+v", back)
	}
}

func TestFileOverwriteKeepsLatest(t *testing.T) {
	ctx := context.Background()
	st, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := st.SaveChecked(ctx, []string{"aa.io"}, nil); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := st.SaveChecked(ctx, []string{"aa.io", "bb.io", "cc.io"}, nil); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err := st.LoadChecked(ctx)
	if err != nil {
		t.Fatalf("LoadChecked: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("checked = %v, want the rewritten snapshot", got)
	}
}

func TestFileCorruptDocumentSurfacesAsJSONError(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, checkedFile), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("plant corrupt file: %v", err)
	}
	if _, err := st.LoadChecked(context.Background()); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("err = %v, want json code", err)
	}
}

func TestFileFindingsArePrivate(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := st.SaveFound(context.Background(), []domain.Finding{{Domain: "aa.io"}}); err != nil {
		t.Fatalf("SaveFound: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, foundFile))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("found file mode = %o, want 600", perm)
	}
}

func TestNewFileRequiresDir(t *testing.T) {
	if _, err := NewFile(""); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}
