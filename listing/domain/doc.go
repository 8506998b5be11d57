// Package domain define os tipos e contratos da listagem.
//
// Não depende de net/http nem de implementações concretas.
package domain
