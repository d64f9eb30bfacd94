package remote_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"review_analyzer/internal/adapters/remote"
)

const seedCSV = "ReviewId,Location,ReviewBody,Timestamp\n" +
	"r1,NYC,Great!,2024-01-01 10:00:00\n" +
	"r2,LA,Terrible.,2024-02-01 10:00:00\n"

func TestClient_ReadTable_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte(seedCSV))
		}
	}))
	defer ts.Close()

	cl, err := remote.New(ts.URL+"/reviews.csv", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tbl, err := cl.ReadTable(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(tbl.Rows) != 2 || tbl.Rows[1][1] != "LA" {
		t.Fatalf("unexpected table: %+v", tbl)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_ReadTable_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, err := remote.New(ts.URL, 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = cl.ReadTable(ctx)
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNew_RejectsNonHTTP(t *testing.T) {
	if _, err := remote.New("data/reviews.csv", 1); err == nil {
		t.Fatalf("expected error for a file path")
	}
}
