package application

import (
	"context"
	"errors"

	"gym-listings/listing/domain"
)

var errNoSource = errors.New("home: no listing source configured")

// Home concentra a regra da página Index: buscar a lista e decidir entre
// a view de lista e a view de erro.
//
// Não há retry: uma falha vai direto para o caminho de erro.
type Home struct {
	Source domain.Source
}

func (h Home) Index(ctx context.Context) domain.Page {
	if h.Source == nil {
		return domain.Page{Failed: true, Err: errNoSource}
	}

	ls, err := h.Source.List(ctx)
	if err != nil {
		return domain.Page{Failed: true, Err: err}
	}
	if ls == nil {
		ls = []domain.Listing{}
	}
	return domain.Page{Listings: ls}
}
