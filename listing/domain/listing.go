package domain

import (
	"context"
	"time"
)

// Listing é o nome de exibição de uma academia.
type Listing string

// Source obtém a lista de academias (fixa, remota, etc).
type Source interface {
	List(ctx context.Context) ([]Listing, error)
}

// Page é o resultado do caso de uso Index.
//
// Failed indica que a view de erro deve ser usada; Err guarda a causa só para log.
type Page struct {
	Listings []Listing
	Failed   bool
	Err      error
}

// Fetch outcomes reportados ao FetchObserver.
const (
	OutcomeOK          = "ok"
	OutcomeStatus      = "status"
	OutcomeDecode      = "decode"
	OutcomeUnreachable = "unreachable"
)

// FetchObserver recebe o resultado de cada busca no upstream (ex: métricas).
type FetchObserver interface {
	ObserveFetch(outcome string, elapsed time.Duration)
}

// Names converte para []string, formato do JSON e das views.
func Names(ls []Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = string(l)
	}
	return out
}
