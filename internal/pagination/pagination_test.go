package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name     string
		page     int
		pageSize int
		expected Pagination
	}{
		{
			name:     "Defaults preserved",
			page:     1,
			pageSize: 10,
			expected: Pagination{Page: 1, PageSize: 10},
		},
		{
			name:     "Zero page clamped to 1",
			page:     0,
			pageSize: 10,
			expected: Pagination{Page: 1, PageSize: 10},
		},
		{
			name:     "Negative page clamped to 1",
			page:     -5,
			pageSize: 25,
			expected: Pagination{Page: 1, PageSize: 25},
		},
		{
			name:     "Zero page size falls back to default",
			page:     3,
			pageSize: 0,
			expected: Pagination{Page: 3, PageSize: 10},
		},
		{
			name:     "Negative page size falls back to default",
			page:     3,
			pageSize: -1,
			expected: Pagination{Page: 3, PageSize: 10},
		},
		{
			name:     "Valid page size is identity",
			page:     2,
			pageSize: 50,
			expected: Pagination{Page: 2, PageSize: 50},
		},
		{
			name:     "Large page size is not capped",
			page:     1,
			pageSize: 100000,
			expected: Pagination{Page: 1, PageSize: 100000},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, New(tc.page, tc.pageSize))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, New(1, 10).Offset())
	assert.Equal(t, 10, New(2, 10).Offset())
	assert.Equal(t, 90, New(10, 10).Offset())
	assert.Equal(t, 0, New(-3, 25).Offset())
}
