package infra

import (
	"context"

	"gym-listings/listing/domain"
)

var fixedGyms = [...]domain.Listing{"Gym A", "Gym B", "Gym C"}

// FixedSource devolve sempre as três academias literais.
type FixedSource struct{}

// List devolve uma cópia nova a cada chamada; quem chama pode alterar à vontade.
func (FixedSource) List(context.Context) ([]domain.Listing, error) {
	out := make([]domain.Listing, len(fixedGyms))
	copy(out, fixedGyms[:])
	return out, nil
}
