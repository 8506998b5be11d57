package seq

import "iter"

// Take devolve no máximo os n primeiros elementos. n <= 0 devolve vazio.
func Take[T any](s iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		left := n
		for v := range s {
			if !yield(v) {
				return
			}
			left--
			if left == 0 {
				return
			}
		}
	}
}

// Skip pula os n primeiros elementos. n <= 0 devolve a sequência inteira.
func Skip[T any](s iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		skipped := 0
		for v := range s {
			if skipped < n {
				skipped++
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// TakeWhile devolve elementos enquanto keep for true e para no primeiro false.
func TakeWhile[T any](s iter.Seq[T], keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			if !keep(v) || !yield(v) {
				return
			}
		}
	}
}

// SkipWhile pula elementos enquanto skip for true; depois do primeiro false
// devolve todo o resto, sem reavaliar o predicado.
func SkipWhile[T any](s iter.Seq[T], skip func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		skipping := true
		for v := range s {
			if skipping && skip(v) {
				continue
			}
			skipping = false
			if !yield(v) {
				return
			}
		}
	}
}
