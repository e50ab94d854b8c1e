package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	return rec.Body.String()
}

func TestHandlerExposesCounters(t *testing.T) {
	ObserveRequest("GET", 200)
	ObserveLogin(false)
	ObserveRecordCreated("transfer")

	body := scrape(t)
	for _, want := range []string{
		`http_requests_total{code="200",method="GET"}`,
		`milasset_logins_total{result="failure"}`,
		`milasset_records_created_total{kind="transfer"}`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %s in output, got:\n%s", want, body)
		}
	}
}

func TestRegistryGathersOnlyOwnCollectors(t *testing.T) {
	ObserveLogin(true)

	families, err := Registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), "go_") || strings.HasPrefix(mf.GetName(), "process_") {
			t.Errorf("unexpected runtime metric %s", mf.GetName())
		}
	}
}
