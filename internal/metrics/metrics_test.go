package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shareity/backend/internal/metrics"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(metrics.NotificationsCreated.WithLabelValues("keyword_match"))
	metrics.NotificationsCreated.WithLabelValues("keyword_match").Inc()
	after := testutil.ToFloat64(metrics.NotificationsCreated.WithLabelValues("keyword_match"))
	if after != before+1 {
		t.Errorf("expected counter to increase by 1: %v -> %v", before, after)
	}
}

func TestHandler(t *testing.T) {
	metrics.DonationTransitions.WithLabelValues("delivered").Inc()

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "shareity_donations_transitions_total") {
		t.Errorf("exposition is missing the transitions counter")
	}
}
