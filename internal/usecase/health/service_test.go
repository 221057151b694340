package health

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/kailas-cloud/nearby/internal/domain"
)

// --- Mocks ---

type mockChecker struct {
	err error
}

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(map[string]Checker{"places": &mockChecker{}, "venues": &mockChecker{}})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	for _, name := range []string{"places", "venues"} {
		if r.Checks[name] != CheckOK {
			t.Errorf("expected %s %q, got %q", name, CheckOK, r.Checks[name])
		}
	}
}

func TestCheck_ProviderError(t *testing.T) {
	svc := New(map[string]Checker{
		"places": &mockChecker{},
		"venues": &mockChecker{err: errors.New("timeout")},
	})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["places"] != CheckOK {
		t.Errorf("expected places %q, got %q", CheckOK, r.Checks["places"])
	}
	if r.Checks["venues"] != CheckError {
		t.Errorf("expected venues %q, got %q", CheckError, r.Checks["venues"])
	}
}

func TestCheck_NotConfigured(t *testing.T) {
	svc := New(map[string]Checker{
		"places": &mockChecker{err: fmt.Errorf("api key: %w", domain.ErrNotConfigured)},
	})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["places"] != CheckNotConfigured {
		t.Errorf("expected places %q, got %q", CheckNotConfigured, r.Checks["places"])
	}
}

func TestCheck_NilCheckerSkipped(t *testing.T) {
	svc := New(map[string]Checker{"places": &mockChecker{}, "venues": nil})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["venues"]; ok {
		t.Error("nil checker should be absent from the report")
	}
	if names := svc.Names(); !slices.Equal(names, []string{"places"}) {
		t.Errorf("unexpected names: %v", names)
	}
}

func TestCheck_NoCheckers(t *testing.T) {
	r := New(nil).Check(context.Background())
	if r.Status != Healthy || len(r.Checks) != 0 {
		t.Errorf("expected healthy empty report, got %+v", r)
	}
}
