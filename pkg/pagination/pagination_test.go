package pagination

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Params
		want Params
	}{
		{name: "defaults", in: Params{}, want: Params{Skip: 0, Limit: DefaultLimit}},
		{name: "negative skip", in: Params{Skip: -5, Limit: 10}, want: Params{Skip: 0, Limit: 10}},
		{name: "limit capped", in: Params{Limit: 500}, want: Params{Skip: 0, Limit: MaxLimit}},
		{name: "passthrough", in: Params{Skip: 40, Limit: 20}, want: Params{Skip: 40, Limit: 20}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Normalize(); got != tc.want {
				t.Fatalf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestPageFor(t *testing.T) {
	page := PageFor(Params{Skip: 40, Limit: 20}, 45)

	if page.CurrentPage != 3 {
		t.Fatalf("expected current_page 3, got %d", page.CurrentPage)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected total_pages 3, got %d", page.TotalPages)
	}
	if page.HasNext {
		t.Fatal("expected has_next false")
	}
	if !page.HasPrevious {
		t.Fatal("expected has_previous true")
	}
}

func TestPageFor_FirstPage(t *testing.T) {
	page := PageFor(Params{Skip: 0, Limit: 20}, 45)

	if page.CurrentPage != 1 {
		t.Fatalf("expected current_page 1, got %d", page.CurrentPage)
	}
	if !page.HasNext {
		t.Fatal("expected has_next true")
	}
	if page.HasPrevious {
		t.Fatal("expected has_previous false")
	}
}

func TestPageFor_Empty(t *testing.T) {
	page := PageFor(Params{}, 0)

	if page.TotalPages != 0 {
		t.Fatalf("expected total_pages 0, got %d", page.TotalPages)
	}
	if page.CurrentPage != 1 {
		t.Fatalf("expected current_page 1, got %d", page.CurrentPage)
	}
	if page.HasNext || page.HasPrevious {
		t.Fatal("expected no next or previous page")
	}
}
