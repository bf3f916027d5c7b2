package app

import (
	"slices"
	"testing"
)

func TestParseSelection(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		expr    string
		total   int
		want    []int
		wantErr bool
	}{
		{"all keyword", "all", 4, []int{1, 2, 3, 4}, false},
		{"empty means all", "", 3, []int{1, 2, 3}, false},
		{"single", "3", 5, []int{3}, false},
		{"range", "2-4", 5, []int{2, 3, 4}, false},
		{"mixed list", "1, 3-4, 6", 6, []int{1, 3, 4, 6}, false},
		{"duplicates collapse", "2,2,1-2", 5, []int{1, 2}, false},
		{"out of range", "7", 5, nil, true},
		{"zero index", "0", 5, nil, true},
		{"backwards range", "4-2", 5, nil, true},
		{"garbage", "two", 5, nil, true},
		{"only commas", ",,", 5, nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSelection(tc.expr, tc.total)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
