// Package application contém os casos de uso da listagem.
//
// Depende apenas do pacote domain e não conhece net/http.
// Ex.: Home.Index(ctx) devolve uma Page (lista ou falha).
package application
