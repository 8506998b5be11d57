package seq

import (
	"cmp"
	"iter"
)

// Where devolve só os elementos de s para os quais keep retorna true.
func Where[T any](s iter.Seq[T], keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			if keep(v) && !yield(v) {
				return
			}
		}
	}
}

// Above devolve os elementos estritamente maiores que threshold, pela ordem
// do operador >. Empates ficam de fora; NaN (no elemento ou no limite) nunca passa.
func Above[T cmp.Ordered](s iter.Seq[T], threshold T) iter.Seq[T] {
	return Where(s, func(v T) bool { return v > threshold })
}

// OfType devolve os elementos cujo tipo dinâmico é exatamente T, já convertidos.
// T deve ser um tipo concreto: com T interface, qualquer implementação casaria.
func OfType[T any](s iter.Seq[any]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			t, ok := v.(T)
			if ok && !yield(t) {
				return
			}
		}
	}
}
