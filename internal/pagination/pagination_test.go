package pagination

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{1, 10, 1, 10},
		{0, 0, 1, DefaultLimit},
		{-3, -1, 1, DefaultLimit},
		{2, 500, 2, MaxLimit},
		{5, 100, 5, 100},
	}
	for _, tc := range cases {
		page, limit := Normalize(tc.page, tc.limit)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Errorf("Normalize(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestParamsFor(t *testing.T) {
	p := ParamsFor(3, 20)
	if p.Limit != 20 {
		t.Errorf("Limit = %d, want 20", p.Limit)
	}
	if p.Offset != 40 {
		t.Errorf("Offset = %d, want 40", p.Offset)
	}

	p = ParamsFor(0, 0)
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("ParamsFor(0, 0) = %+v, want first default page", p)
	}
}

func TestMetaFor(t *testing.T) {
	m := MetaFor(95, 2, 10)
	if m.Total != 95 {
		t.Errorf("Total = %d, want 95", m.Total)
	}
	if m.CurrentPage != 2 {
		t.Errorf("CurrentPage = %d, want 2", m.CurrentPage)
	}
	if m.PerPage != 10 {
		t.Errorf("PerPage = %d, want 10", m.PerPage)
	}
	if m.FirstPage != 1 {
		t.Errorf("FirstPage = %d, want 1", m.FirstPage)
	}
	if m.LastPage != 10 {
		t.Errorf("LastPage = %d, want 10", m.LastPage)
	}
}

func TestMetaFor_EmptyTable(t *testing.T) {
	m := MetaFor(0, 1, 10)
	if m.LastPage != 1 {
		t.Errorf("LastPage = %d, want 1 for empty table", m.LastPage)
	}
}

func TestMetaFor_ExactMultiple(t *testing.T) {
	m := MetaFor(100, 1, 10)
	if m.LastPage != 10 {
		t.Errorf("LastPage = %d, want 10", m.LastPage)
	}
}
