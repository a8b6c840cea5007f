package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestObserveAndExpose(t *testing.T) {
	m := NewHTTPMetrics("api")
	m.IncInFlight()
	m.Observe("GET", "/api/products", "200", 42*time.Millisecond)
	m.DecInFlight()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "http_requests_total") {
		t.Fatalf("expected http_requests_total in scrape output:\n%s", body)
	}
	if !strings.Contains(body, `route="/api/products"`) {
		t.Fatal("expected route label in scrape output")
	}
}

func TestObserveNormalizesEmptyRoute(t *testing.T) {
	m := NewHTTPMetrics("api")
	m.Observe("GET", "", "404", time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), `route="unmatched"`) {
		t.Fatal("expected unmatched route label")
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/x", "200", time.Second)
	m.IncInFlight()
	m.DecInFlight()
}
