package handlers

import (
	"net/http"
	"testing"

	"github.com/tbourn/go-crm-backend/internal/services"
)

func TestOperatorsLoad(t *testing.T) {
	r, _ := newAPI(t)

	// Empty report.
	w := doJSON(t, r, http.MethodGet, "/api/v1/stats/operators-load", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var stats []services.OperatorLoadStats
	decode(t, w, &stats)
	if len(stats) != 0 {
		t.Fatalf("expected empty report, got %+v", stats)
	}

	// One operator at 1/4 capacity.
	op, src := wireSource(t, r, "Alice", "tg", 4)
	w = doJSON(t, r, http.MethodPost, "/api/v1/requests",
		`{"user_identifier":"u-1","source_id":`+uitoa(src.ID)+`,"message":"m"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("seed request: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/stats/operators-load", "")
	decode(t, w, &stats)
	if len(stats) != 1 {
		t.Fatalf("expected 1 row, got %+v", stats)
	}
	row := stats[0]
	if row.OperatorID != op.ID || row.CurrentLoad != 1 || row.MaxLoadLimit != 4 || row.LoadPercentage != 25 {
		t.Fatalf("unexpected load row: %+v", row)
	}
}

func TestRequestsDistribution(t *testing.T) {
	r, _ := newAPI(t)
	op, src := wireSource(t, r, "Alice", "tg", 1)

	// One assigned, one waiting (capacity 1).
	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/v1/requests",
			`{"user_identifier":"u-1","source_id":`+uitoa(src.ID)+`,"message":"m"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("seed request #%d: %d", i, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/stats/requests-distribution", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var stats services.DistributionStats
	decode(t, w, &stats)

	if stats.TotalRequests != 2 || stats.UnassignedRequests != 1 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if len(stats.BySource) != 1 || stats.BySource[0].RequestCount != 2 {
		t.Fatalf("unexpected by-source breakdown: %+v", stats.BySource)
	}

	var sawAlice, sawUnassigned bool
	for _, b := range stats.ByOperator {
		if b.OperatorID == nil {
			sawUnassigned = b.RequestCount == 1
			continue
		}
		if *b.OperatorID == op.ID {
			sawAlice = b.RequestCount == 1
		}
	}
	if !sawAlice || !sawUnassigned {
		t.Fatalf("missing distribution buckets: %+v", stats.ByOperator)
	}
}
