package health

import "context"

// Checker checks one upstream provider.
type Checker interface {
	HealthCheck(ctx context.Context) error
}
