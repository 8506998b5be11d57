// Package seq fornece filtros preguiçosos (iter.Seq) sobre coleções em memória.
//
// Operações:
//
//   - Where / Above: filtro por predicado e por limiar numérico estrito
//   - OfKind / Ints / Floats / Texts: estreitamento por tag de Value (coleção heterogênea)
//   - OfType: estreitamento por tipo dinâmico exato para coleções []any
//   - Take / Skip / TakeWhile / SkipWhile: particionamento
//
// Nada é avaliado até o consumidor iterar. Iterar de novo reavalia a fonte;
// trate o resultado como visão de uso único, a menos que a fonte seja materializada.
// Todas as operações preservam a ordem original.
package seq
