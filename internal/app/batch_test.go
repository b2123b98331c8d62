package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

const canvasPage = `<!doctype html>
<html><body>
  <div data-block-type="heading_1">Quarterly Review</div>
  <div data-block-type="text">Revenue grew.</div>
  <div data-block-type="note">mention the chart</div>
</body></html>`

func TestReadURLList_SkipsCommentsAndBlanks(t *testing.T) {
	body := "# comment\n\nhttps://a.example.com\n  https://b.example.com  \n#x\n"
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	urls, err := ReadURLList(path)
	if err != nil {
		t.Fatalf("read list: %v", err)
	}
	if len(urls) != 2 || urls[0] != "https://a.example.com" || urls[1] != "https://b.example.com" {
		t.Fatalf("unexpected urls: %v", urls)
	}
}

func TestRunBatch_IsolatesFailuresAndWritesSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			w.WriteHeader(404)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(canvasPage))
	}))
	defer srv.Close()

	dir := t.TempDir()
	listPath := filepath.Join(dir, "urls.txt")
	list := fmt.Sprintf("%s/good\n%s/bad\n%s/also-good\n", srv.URL, srv.URL, srv.URL)
	if err := os.WriteFile(listPath, []byte(list), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	summaryPath := filepath.Join(dir, "summary.xlsx")

	a := New(Config{
		BatchPath:   listPath,
		OutputDir:   filepath.Join(dir, "decks"),
		SummaryPath: summaryPath,
		MaxAttempts: 1,
	})
	if err := a.RunBatch(context.Background()); err != nil {
		t.Fatalf("batch with partial failure must not error, got %v", err)
	}

	// Two decks written, the failed one skipped.
	if _, err := os.Stat(filepath.Join(dir, "decks", "deck-001.pdf")); err != nil {
		t.Fatalf("expected first deck: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "decks", "deck-003.pdf")); err != nil {
		t.Fatalf("expected third deck: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "decks", "deck-002.pdf")); err == nil {
		t.Fatalf("failed document must not leave a deck behind")
	}

	// Summary rows reflect per-item outcomes.
	f, err := excelize.OpenFile(summaryPath)
	if err != nil {
		t.Fatalf("open summary: %v", err)
	}
	defer func() { _ = f.Close() }()
	status2, err := f.GetCellValue("Documents", "B3")
	if err != nil {
		t.Fatalf("read summary cell: %v", err)
	}
	if status2 != "failed" {
		t.Fatalf("expected row for /bad to be failed, got %q", status2)
	}
	status1, _ := f.GetCellValue("Documents", "B2")
	if status1 != "ok" {
		t.Fatalf("expected row for /good to be ok, got %q", status1)
	}
	strategy1, _ := f.GetCellValue("Documents", "C2")
	if strategy1 != "canvas-dom" {
		t.Fatalf("expected canvas-dom strategy in summary, got %q", strategy1)
	}
}

func TestRunBatch_AllFailedReturnsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	dir := t.TempDir()
	listPath := filepath.Join(dir, "urls.txt")
	if err := os.WriteFile(listPath, []byte(srv.URL+"/doc\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	a := New(Config{BatchPath: listPath, OutputDir: dir, MaxAttempts: 1})
	err := a.RunBatch(context.Background())
	if !errors.Is(err, ErrAllDocumentsFailed) {
		t.Fatalf("expected ErrAllDocumentsFailed, got %v", err)
	}
}
