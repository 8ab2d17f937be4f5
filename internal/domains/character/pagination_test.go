package character

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		page, limit    int
		wantTotalPages int
		wantNext       bool
		wantPrev       bool
	}{
		{"empty store", 0, 1, 10, 0, false, false},
		{"exact multiple", 20, 1, 10, 2, true, false},
		{"partial last page", 25, 2, 5, 5, true, true},
		{"last page", 25, 5, 5, 5, false, true},
		{"one extra row", 11, 2, 10, 2, false, true},
		{"page beyond data", 3, 4, 10, 1, false, true},
		{"limit of one", 3, 2, 1, 3, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate([]int{1, 2}, tt.total, tt.page, tt.limit)

			assert.Equal(t, []int{1, 2}, p.Data)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.wantTotalPages, p.TotalPages)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.wantPrev, p.HasPrev)
		})
	}
}

func TestPaginate_NilItemsSerialiseAsArray(t *testing.T) {
	p := Paginate[Character](nil, 0, 1, 10)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"data":[],"total":0,"page":1,"limit":10,"totalPages":0,"hasNext":false,"hasPrev":false}`,
		string(raw))
}
