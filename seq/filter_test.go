package seq

import (
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAbove(t *testing.T) {
	tests := []struct {
		name      string
		in        []int
		threshold int
		want      []int
	}{
		{name: "keeps elements above threshold", in: []int{1, 2, 3, 4, 5}, threshold: 3, want: []int{4, 5}},
		{name: "empty input", in: nil, threshold: 3, want: nil},
		{name: "nothing above", in: []int{1, 2, 3}, threshold: 10, want: nil},
		{name: "ties excluded", in: []int{3, 3, 3}, threshold: 3, want: nil},
		{name: "order preserved with duplicates", in: []int{9, 1, 7, 9, 2, 8}, threshold: 5, want: []int{9, 7, 9, 8}},
		{name: "negative threshold", in: []int{-3, -1, 0, -2}, threshold: -2, want: []int{-1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Above(slices.Values(tt.in), tt.threshold))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Above() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAbove_FloatsAndStrings(t *testing.T) {
	gotF := slices.Collect(Above(slices.Values([]float64{0.5, 1.5, 1.0, 2.25}), 1.0))
	if diff := cmp.Diff([]float64{1.5, 2.25}, gotF); diff != "" {
		t.Fatalf("float mismatch (-want +got):\n%s", diff)
	}

	gotS := slices.Collect(Above(slices.Values([]string{"Gym A", "Gym C", "Gym B"}), "Gym A"))
	if diff := cmp.Diff([]string{"Gym C", "Gym B"}, gotS); diff != "" {
		t.Fatalf("string mismatch (-want +got):\n%s", diff)
	}
}

func TestAbove_NaN(t *testing.T) {
	if got := slices.Collect(Above(slices.Values([]float64{1, 2}), math.NaN())); len(got) != 0 {
		t.Fatalf("NaN threshold: want empty, got %v", got)
	}

	got := slices.Collect(Above(slices.Values([]float64{math.NaN(), 4, math.Inf(1), math.NaN(), 2}), 3))
	if diff := cmp.Diff([]float64{4, math.Inf(1)}, got); diff != "" {
		t.Fatalf("NaN elements mismatch (-want +got):\n%s", diff)
	}
}

func TestAbove_ResultIsSubsequenceOfInput(t *testing.T) {
	in := []int{5, -4, 12, 0, 7, 7, 3, 100, -50, 6}
	for _, threshold := range []int{-100, -4, 0, 6, 7, 99, 100} {
		got := slices.Collect(Above(slices.Values(in), threshold))

		j := 0
		for _, v := range got {
			if v <= threshold {
				t.Fatalf("threshold %d: element %d is not above threshold", threshold, v)
			}
			for j < len(in) && in[j] != v {
				j++
			}
			if j == len(in) {
				t.Fatalf("threshold %d: %v is not an ordered subsequence of %v", threshold, got, in)
			}
			j++
		}
	}
}

func TestAbove_IsLazy(t *testing.T) {
	pulled := 0
	src := func(yield func(int) bool) {
		for _, v := range []int{1, 5, 6, 7} {
			pulled++
			if !yield(v) {
				return
			}
		}
	}

	filtered := Above(src, 3)
	if pulled != 0 {
		t.Fatalf("expected no evaluation before ranging, pulled=%d", pulled)
	}

	for v := range filtered {
		if v != 5 {
			t.Fatalf("expected first element 5, got %d", v)
		}
		break
	}
	if pulled != 2 {
		t.Fatalf("expected source pulled up to first match (2), got %d", pulled)
	}
}

func TestAbove_ReiterationReevaluatesSource(t *testing.T) {
	data := []int{1, 4, 5}
	filtered := Above(slices.Values(data), 3)

	first := slices.Collect(filtered)
	data[0] = 10
	second := slices.Collect(filtered)

	if diff := cmp.Diff([]int{4, 5}, first); diff != "" {
		t.Fatalf("first pass mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{10, 4, 5}, second); diff != "" {
		t.Fatalf("second pass mismatch (-want +got):\n%s", diff)
	}
}

func TestWhere(t *testing.T) {
	even := func(v int) bool { return v%2 == 0 }
	got := slices.Collect(Where(slices.Values([]int{1, 2, 3, 4, 6}), even))
	if diff := cmp.Diff([]int{2, 4, 6}, got); diff != "" {
		t.Fatalf("Where() mismatch (-want +got):\n%s", diff)
	}
}

func TestOfType(t *testing.T) {
	objects := []any{1, "two", 3.0, 4, "five"}

	ints := slices.Collect(OfType[int](slices.Values(objects)))
	if diff := cmp.Diff([]int{1, 4}, ints); diff != "" {
		t.Fatalf("OfType[int] mismatch (-want +got):\n%s", diff)
	}

	strs := slices.Collect(OfType[string](slices.Values(objects)))
	if diff := cmp.Diff([]string{"two", "five"}, strs); diff != "" {
		t.Fatalf("OfType[string] mismatch (-want +got):\n%s", diff)
	}

	floats := slices.Collect(OfType[float64](slices.Values(objects)))
	if diff := cmp.Diff([]float64{3.0}, floats); diff != "" {
		t.Fatalf("OfType[float64] mismatch (-want +got):\n%s", diff)
	}

	// int64 não é int: tipo exato, sem conversão de valor
	if got := slices.Collect(OfType[int64](slices.Values(objects))); len(got) != 0 {
		t.Fatalf("expected no int64 elements, got %v", got)
	}
}
