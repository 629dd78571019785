package forge

import (
	"encoding/json"
	"testing"
)

func TestMajorOf(t *testing.T) {
	tests := []struct {
		version string
		want    int
	}{
		{"14.23.5.2859", 14},
		{"52.0.2", 52},
		{"9.11.1.965", 9},
		{"garbage", 0},
	}
	for _, tt := range tests {
		if got := majorOf(tt.version); got != tt.want {
			t.Errorf("majorOf(%q) = %d, want %d", tt.version, got, tt.want)
		}
	}
}

func TestPromotionsLookup(t *testing.T) {
	raw := []byte(`{"homepage":"x","promos":{"1.12.2-latest":"14.23.5.2860","1.12.2-recommended":"14.23.5.2859"}}`)
	index := promotions{}
	if err := json.Unmarshal(raw, &index); err != nil {
		t.Fatal(err)
	}
	if got := index.Promos["1.12.2-latest"]; got != "14.23.5.2860" {
		t.Errorf("latest = %q", got)
	}
}
