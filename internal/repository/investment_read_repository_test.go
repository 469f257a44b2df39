package repository

import "testing"

func TestResolveSortColumn(t *testing.T) {
	tests := []struct {
		name   string
		sortBy string
		want   string
	}{
		{name: "date", sortBy: "tnx_date", want: "tnx_date"},
		{name: "description", sortBy: "description", want: "description"},
		{name: "amount invested", sortBy: "amount_invested", want: "amount_invested"},
		{name: "current value", sortBy: "current_value", want: "current_value"},
		{name: "gain", sortBy: "gain", want: "gain"},
		{name: "unknown key falls back", sortBy: "charges", want: "tnx_date"},
		{name: "empty falls back", sortBy: "", want: "tnx_date"},
		{name: "injection attempt falls back", sortBy: "tnx_date; DROP TABLE investment_history;--", want: "tnx_date"},
		{name: "subquery attempt falls back", sortBy: "(SELECT password_hash FROM members LIMIT 1)", want: "tnx_date"},
		{name: "case sensitive keys", sortBy: "TNX_DATE", want: "tnx_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveSortColumn(tt.sortBy); got != tt.want {
				t.Errorf("resolveSortColumn(%q) = %q, expected %q", tt.sortBy, got, tt.want)
			}
		})
	}
}

func TestResolveSortOrder(t *testing.T) {
	tests := []struct {
		name      string
		sortOrder string
		want      string
	}{
		{name: "asc lowercase", sortOrder: "asc", want: "ASC"},
		{name: "asc uppercase", sortOrder: "ASC", want: "ASC"},
		{name: "desc", sortOrder: "desc", want: "DESC"},
		{name: "empty defaults to desc", sortOrder: "", want: "DESC"},
		{name: "garbage defaults to desc", sortOrder: "ASC; --", want: "DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveSortOrder(tt.sortOrder); got != tt.want {
				t.Errorf("resolveSortOrder(%q) = %q, expected %q", tt.sortOrder, got, tt.want)
			}
		})
	}
}
