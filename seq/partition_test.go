package seq

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPartitioning(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	lessThan3 := func(v int) bool { return v < 3 }

	tests := []struct {
		name string
		got  []int
		want []int
	}{
		{name: "take", got: slices.Collect(Take(slices.Values(in), 2)), want: []int{1, 2}},
		{name: "take zero", got: slices.Collect(Take(slices.Values(in), 0)), want: nil},
		{name: "take beyond length", got: slices.Collect(Take(slices.Values(in), 9)), want: in},
		{name: "skip", got: slices.Collect(Skip(slices.Values(in), 3)), want: []int{4, 5}},
		{name: "skip negative", got: slices.Collect(Skip(slices.Values(in), -1)), want: in},
		{name: "skip beyond length", got: slices.Collect(Skip(slices.Values(in), 9)), want: nil},
		{name: "take while", got: slices.Collect(TakeWhile(slices.Values([]int{1, 2, 3, 1}), lessThan3)), want: []int{1, 2}},
		{name: "skip while", got: slices.Collect(SkipWhile(slices.Values([]int{1, 2, 3, 1}), lessThan3)), want: []int{3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTake_StopsPullingSource(t *testing.T) {
	pulled := 0
	src := func(yield func(int) bool) {
		for i := 0; i < 100; i++ {
			pulled++
			if !yield(i) {
				return
			}
		}
	}

	got := slices.Collect(Take(src, 3))
	if len(got) != 3 {
		t.Fatalf("expected 3 elements, got %v", got)
	}
	if pulled != 3 {
		t.Fatalf("expected source pulled 3 times, got %d", pulled)
	}
}
