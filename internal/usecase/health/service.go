package health

import (
	"context"
	"errors"
	"slices"

	"github.com/kailas-cloud/nearby/internal/domain"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all providers are usable.
	Healthy Status = "ok"
	// Degraded indicates at least one provider is failing or unconfigured.
	Degraded Status = "degraded"
)

// CheckResult represents an individual provider check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing check.
	CheckError CheckResult = "error"
	// CheckNotConfigured indicates missing credentials.
	CheckNotConfigured CheckResult = "not_configured"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks over named providers.
type Service struct {
	checkers map[string]Checker
}

// New creates a Service. Nil checkers are skipped.
func New(checkers map[string]Checker) *Service {
	cs := make(map[string]Checker, len(checkers))
	for name, c := range checkers {
		if c != nil {
			cs[name] = c
		}
	}
	return &Service{checkers: cs}
}

// Names returns the checked provider names, sorted.
func (s *Service) Names() []string {
	names := make([]string, 0, len(s.checkers))
	for name := range s.checkers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Check runs every provider check.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checkers))
	status := Healthy

	for name, c := range s.checkers {
		err := c.HealthCheck(ctx)
		switch {
		case err == nil:
			checks[name] = CheckOK
		case errors.Is(err, domain.ErrNotConfigured):
			checks[name] = CheckNotConfigured
			status = Degraded
		default:
			checks[name] = CheckError
			status = Degraded
		}
	}

	return Report{Status: status, Checks: checks}
}
