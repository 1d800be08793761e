package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	cases := []struct {
		page, size         int
		wantOffset, wantLn int
	}{
		{1, 10, 0, 10},
		{3, 10, 20, 10},
		{0, 10, 0, 10},
		{-4, 5, 0, 5},
		{2, 0, DefaultPageSize, DefaultPageSize},
		{1, MaxPageSize + 1, 0, DefaultPageSize},
	}
	for _, tc := range cases {
		offset, limit := Calculate(tc.page, tc.size)
		assert.Equal(t, tc.wantOffset, offset, "page=%d size=%d", tc.page, tc.size)
		assert.Equal(t, tc.wantLn, limit, "page=%d size=%d", tc.page, tc.size)
	}
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("x", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
}

func TestTotalPages(t *testing.T) {
	assert.EqualValues(t, 0, TotalPages(0, 10))
	assert.EqualValues(t, 1, TotalPages(10, 10))
	assert.EqualValues(t, 2, TotalPages(11, 10))
	assert.EqualValues(t, 0, TotalPages(5, 0))
}
