package ports

import (
	"context"
	"water-redistribution-service/internal/domain"
)

// Port: a boundary for retrieving the wells snapshot used by one analysis run.
type WellRepository interface {
	// Retrieve every well, eligible or not.
	ListWells(ctx context.Context) ([]domain.Well, error)
}
