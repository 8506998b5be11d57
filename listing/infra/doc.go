// Package infra contém implementações concretas de domain.Source.
//
// Exemplos:
//   - FixedSource: a lista literal servida pela webapi
//   - HTTPSource: GET no upstream com http.Client ajustado (timeouts)
package infra
