package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfter_Embedded(t *testing.T) {
	steps, err := After(FS, 0)
	require.NoError(t, err)
	require.NotEmpty(t, steps)
	assert.Equal(t, 1, steps[0].Version)
	assert.Contains(t, steps[0].SQL, "CREATE TABLE")
}

func TestAfter_OrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"010_late.up.sql":     {Data: []byte("-- 10")},
		"002_second.up.sql":   {Data: []byte("-- 2")},
		"001_first.up.sql":    {Data: []byte("-- 1")},
		"002_second.down.sql": {Data: []byte("-- down")},
		"README.md":           {Data: []byte("notes")},
		"draft.up.sql":        {Data: []byte("-- no number")},
	}

	steps, err := After(fsys, 1)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, 2, steps[0].Version)
	assert.Equal(t, "002_second.up.sql", steps[0].Name)
	assert.Equal(t, 10, steps[1].Version)

	none, err := After(fsys, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
