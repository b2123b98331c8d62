package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperifyio/canvasdeck/internal/capture"
)

func TestProcessURL_FullPipeline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(canvasPage))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "deck.pdf")
	a := New(Config{URL: srv.URL, MaxAttempts: 1})
	res := a.ProcessURL(context.Background(), srv.URL, out)
	if res.Failed() {
		t.Fatalf("pipeline failed: %v", res.Err)
	}
	if res.Strategy != "canvas-dom" {
		t.Fatalf("expected canvas-dom to win, got %q", res.Strategy)
	}
	if res.Slides != 1 {
		t.Fatalf("expected one slide, got %d", res.Slides)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected deck written: %v", err)
	}
}

func TestProcessURL_StrategyOrderOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(canvasPage))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "deck.pdf")
	a := New(Config{URL: srv.URL, MaxAttempts: 1, Strategies: []string{"text-dump"}})
	res := a.ProcessURL(context.Background(), srv.URL, out)
	if res.Failed() {
		t.Fatalf("pipeline failed: %v", res.Err)
	}
	if res.Strategy != "text-dump" {
		t.Fatalf("configured strategy order ignored, got %q", res.Strategy)
	}
}

func TestProcessURL_EmptyDocumentIsWarningNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body></body></html>"))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "empty.pdf")
	a := New(Config{MaxAttempts: 1})
	res := a.ProcessURL(context.Background(), srv.URL, out)
	if res.Failed() {
		t.Fatalf("empty document must not fail, got %v", res.Err)
	}
	if !res.EmptyDeck || res.Slides != 0 {
		t.Fatalf("expected empty deck result, got %+v", res)
	}
}

func TestProcessURL_CaptureFailureIsDistinguishable(t *testing.T) {
	a := New(Config{MaxAttempts: 1})
	res := a.ProcessURL(context.Background(), "http://127.0.0.1:1/unreachable", "ignored.pdf")
	if !res.Failed() {
		t.Fatalf("expected failure for unreachable host")
	}
	if !errors.Is(res.Err, capture.ErrUnavailable) {
		t.Fatalf("expected capture.ErrUnavailable, got %v", res.Err)
	}
}
