package distance

import (
	"fmt"

	"water-redistribution-service/internal/domain"
)

type MockPair struct {
	From domain.Coordinates
	Km   float64
	Err  error
}

// MockDistanceProvider returns fixed distances keyed by source coordinates,
// ignoring the destination. Unknown sources fail.
type MockDistanceProvider struct {
	m map[domain.Coordinates]MockPair
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[domain.Coordinates]MockPair, len(pairs))
	for _, p := range pairs {
		m[p.From] = p
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) DistanceKm(from, to domain.Coordinates) (float64, error) {
	r, ok := p.m[from]
	if !ok {
		return 0, fmt.Errorf("missing pair %+v -> %+v", from, to)
	}
	if r.Err != nil {
		return 0, r.Err
	}
	return r.Km, nil
}
