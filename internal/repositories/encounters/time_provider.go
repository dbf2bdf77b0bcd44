package encounters

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks github.com/KirkDiggler/rpg-rules-engine/internal/repositories/encounters TimeProvider

type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

// NewTimeProvider returns a provider backed by the wall clock in UTC
func NewTimeProvider() TimeProvider {
	return realTimeProvider{}
}

func (realTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
