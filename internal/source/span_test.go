package source

import "testing"

func TestSpanContains(t *testing.T) {
	outer := Span{File: 1, Start: 10, End: 30}

	cases := []struct {
		name  string
		inner Span
		want  bool
	}{
		{"inside", Span{File: 1, Start: 12, End: 20}, true},
		{"equal", Span{File: 1, Start: 10, End: 30}, true},
		{"starts before", Span{File: 1, Start: 9, End: 20}, false},
		{"ends after", Span{File: 1, Start: 12, End: 31}, false},
		{"other file", Span{File: 2, Start: 12, End: 20}, false},
	}
	for _, tc := range cases {
		if got := outer.Contains(tc.inner); got != tc.want {
			t.Errorf("%s: Contains(%v) = %v, want %v", tc.name, tc.inner, got, tc.want)
		}
	}
}

func TestSpanShiftRight(t *testing.T) {
	sp := Span{File: 3, Start: 5, End: 9}
	shifted := sp.ShiftRight(100)
	if shifted.File != 3 || shifted.Start != 105 || shifted.End != 109 {
		t.Fatalf("ShiftRight(100) = %v", shifted)
	}
	if shifted.Len() != sp.Len() {
		t.Fatalf("shift changed length: %d vs %d", shifted.Len(), sp.Len())
	}
}

func TestSpanEmptyAndLen(t *testing.T) {
	if !(Span{Start: 7, End: 7}).Empty() {
		t.Fatalf("zero-length span should be empty")
	}
	if (Span{Start: 7, End: 12}).Len() != 5 {
		t.Fatalf("wrong length")
	}
}
