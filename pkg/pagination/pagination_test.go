package pagination

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   Params
		want Params
	}{
		{Params{}, Params{Page: 0, Size: DefaultSize}},
		{Params{Page: -3, Size: 5}, Params{Page: 0, Size: 5}},
		{Params{Page: 2, Size: 500}, Params{Page: 2, Size: MaxSize}},
	}
	for _, tc := range cases {
		if got := tc.in.Normalize(); got != tc.want {
			t.Fatalf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	if got := (Params{Page: 2, Size: 10}).Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
}

func TestNewPage(t *testing.T) {
	page := NewPage([]int{1, 2}, Params{Page: 1, Size: 2}, 5)
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.TotalPages)
	}
	if page.First || page.Last {
		t.Fatalf("middle page flagged first=%v last=%v", page.First, page.Last)
	}

	empty := NewPage[int](nil, Params{}, 0)
	if empty.Content == nil || len(empty.Content) != 0 {
		t.Fatal("expected empty, non-nil content")
	}
	if !empty.First || !empty.Last || empty.TotalPages != 0 {
		t.Fatalf("unexpected empty page %+v", empty)
	}
}
