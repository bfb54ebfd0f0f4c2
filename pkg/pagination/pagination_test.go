package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name     string
		page     int
		size     int
		wantPage int
		wantSize int
		wantSkip int
	}{
		{"valid window", 2, 5, 2, 5, 5},
		{"zero page clamps to first", 0, 5, 1, 5, 0},
		{"negative page clamps to first", -3, 10, 1, 10, 0},
		{"oversized size falls back to default", 2, 500, 2, 10, 10},
		{"zero size falls back to default", 1, 0, 1, 10, 0},
		{"max size is allowed", 1, 100, 1, 100, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, size, skip := Normalize(tc.page, tc.size)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantSize, size)
			assert.Equal(t, tc.wantSkip, skip)
		})
	}
}
