package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, PageSize: 10}, 25)

	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.EqualValues(t, 25, meta.TotalItems)
	assert.Equal(t, 10, meta.ItemsPerPage)
}

func TestGetMetaExactFit(t *testing.T) {
	meta := GetMeta(&Params{Page: 1, PageSize: 10}, 20)
	assert.Equal(t, 2, meta.TotalPages)
}

func TestGetMetaEmpty(t *testing.T) {
	meta := GetMeta(&Params{Page: 1, PageSize: 10}, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.EqualValues(t, 0, meta.TotalItems)
}
