package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
	}{
		{"zero value gets default limit", Page{}, Page{Skip: 0, Limit: 100}},
		{"negative skip floored", Page{Skip: -5, Limit: 10}, Page{Skip: 0, Limit: 10}},
		{"limit capped", Page{Skip: 20, Limit: 10_000}, Page{Skip: 20, Limit: 500}},
		{"valid page untouched", Page{Skip: 40, Limit: 25}, Page{Skip: 40, Limit: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
