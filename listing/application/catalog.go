package application

import (
	"context"

	"gym-listings/listing/domain"
)

// Catalog é o caso de uso por trás de GET /gyms.
type Catalog struct {
	Source domain.Source
}

// List devolve a lista da fonte. Sem fonte, devolve lista vazia.
func (c Catalog) List(ctx context.Context) ([]domain.Listing, error) {
	if c.Source == nil {
		return []domain.Listing{}, nil
	}
	ls, err := c.Source.List(ctx)
	if err != nil {
		return nil, err
	}
	if ls == nil {
		ls = []domain.Listing{}
	}
	return ls, nil
}
