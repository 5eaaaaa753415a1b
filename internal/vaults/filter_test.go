package vaults

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	in := []Vault{
		{Address: "1", Name: "yvDAI", Category: "Stablecoin", Token: Token{Symbol: "DAI"}},
		{Address: "2", Name: "yvWETH", DisplayName: "Wrapped Ether", Category: "Volatile", Token: Token{Symbol: "WETH"}},
		{Address: "3", Name: "yvCurve-stETH", Category: "Curve", Token: Token{Symbol: "steCRV"}},
	}

	tests := []struct {
		name     string
		query    string
		category string
		want     []string
	}{
		{name: "all", want: []string{"1", "2", "3"}},
		{name: "symbol", query: "dai", want: []string{"1"}},
		{name: "display name", query: "ether", want: []string{"2"}},
		{name: "category", category: "curve", want: []string{"3"}},
		{name: "category and query", category: "Stablecoin", query: "eth", want: []string{}},
	}
	for _, tc := range tests {
		got := Filter(in, tc.query, tc.category)
		addrs := make([]string, 0, len(got))
		for _, v := range got {
			addrs = append(addrs, v.Address)
		}
		if diff := cmp.Diff(tc.want, addrs); diff != "" {
			t.Fatalf("%s: Filter() mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	got := Categories([]Vault{{Category: "Curve"}, {Category: ""}, {Category: "Balancer"}, {Category: "Curve"}})
	if diff := cmp.Diff([]string{"Balancer", "Curve"}, got); diff != "" {
		t.Fatalf("Categories() mismatch (-want +got):\n%s", diff)
	}
}
