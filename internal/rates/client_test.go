package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wishly/internal/core"
	"wishly/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"EUR","rates":{"USD":1.08,"SEK":11.2,"GBP":0.85}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, testLogger())
	got, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rates, got %d", len(got))
	}
	if got[core.USD] != 1.08 {
		t.Errorf("USD rate: expected 1.08, got %v", got[core.USD])
	}
}

func TestClientFetchErrors(t *testing.T) {
	t.Run("server error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 2*time.Second, testLogger())
		if _, err := c.Fetch(context.Background()); err == nil {
			t.Fatal("expected error for non-200 status")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 2*time.Second, testLogger())
		if _, err := c.Fetch(context.Background()); err == nil {
			t.Fatal("expected error for malformed body")
		}
	})

	t.Run("unreachable server", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", 200*time.Millisecond, testLogger())
		if _, err := c.Fetch(context.Background()); err == nil {
			t.Fatal("expected error for unreachable server")
		}
	})
}

func TestPopulateSwallowsFailure(t *testing.T) {
	tbl := NewTable(core.EUR)

	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond, testLogger())
	c.Populate(context.Background(), tbl)

	if !tbl.Empty() {
		t.Fatal("table should stay empty after failed fetch")
	}
	// Identity conversion keeps working
	if got := tbl.Convert(10, core.USD, core.EUR); got != 10 {
		t.Fatalf("expected identity conversion, got %v", got)
	}
}

func TestPopulateLoadsTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"EUR","rates":{"USD":2}}`))
	}))
	defer srv.Close()

	tbl := NewTable(core.EUR)
	c := NewClient(srv.URL, 2*time.Second, testLogger())
	c.Populate(context.Background(), tbl)

	if tbl.Empty() {
		t.Fatal("table should be loaded")
	}
	if got := tbl.Convert(1, core.EUR, core.USD); got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
}
