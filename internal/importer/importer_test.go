package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func laptopCategory(t *testing.T) (*types.Snapshot, string) {
	t.Helper()
	snap := types.NewSnapshot()
	c, err := snap.AddCategory("Laptops")
	require.NoError(t, err)
	_, err = snap.AddField(c.ID, "Patrimonio", "", types.FieldString)
	require.NoError(t, err)
	return snap, c.ID
}

func TestApplyCreatesItemsInColumnOrder(t *testing.T) {
	snap, catID := laptopCategory(t)
	table := Table{
		Headers: []string{"Patrimonio", "Serial Number", "Setor"},
		Rows: [][]string{
			{"1001", "SN-1", "TI"},
			{"1002", "", "RH"},
			{"1003"},
		},
	}

	next, res, err := Apply(snap, catID, table, Options{})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Empty(t, res.Fields)
	assert.Empty(t, snap.Items, "input snapshot is untouched")
	require.Len(t, next.Items, 3)

	first := next.Items[0]
	assert.Equal(t, catID, first.CategoryID)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, []string{"patrimonio", "serial_number", "setor"}, first.Keys())

	second := next.Items[1]
	assert.Equal(t, []string{"patrimonio", "setor"}, second.Keys(), "empty cells are omitted")
	assert.Equal(t, []string{"patrimonio"}, next.Items[2].Keys())

	v, ok := first.Get("serial_number")
	require.True(t, ok)
	assert.Equal(t, types.KindString, v.Kind())
	assert.Equal(t, "SN-1", v.String())
}

func TestApplyCreateFields(t *testing.T) {
	snap, catID := laptopCategory(t)
	table := Table{
		Headers: []string{"Patrimonio", "Serial Number", "Setor"},
		Rows:    [][]string{{"1001", "SN-1", "TI"}},
	}

	next, res, err := Apply(snap, catID, table, Options{CreateFields: true})
	require.NoError(t, err)
	require.Len(t, res.Fields, 2, "existing patrimonio field is reused")
	assert.Equal(t, "Serial Number", res.Fields[0].Name)
	assert.Equal(t, "serial_number", res.Fields[0].Key)
	assert.Equal(t, types.FieldString, res.Fields[0].Type)
	assert.Equal(t, "setor", res.Fields[1].Key)

	assert.Len(t, next.FieldsOf(catID), 3)
	assert.Len(t, snap.FieldsOf(catID), 1)
}

func TestApplyMapping(t *testing.T) {
	snap, catID := laptopCategory(t)
	table := Table{
		Headers: []string{"Asset Tag", "Modelo"},
		Rows:    [][]string{{"1001", "Latitude"}},
	}

	next, _, err := Apply(snap, catID, table, Options{Mapping: map[string]string{
		"Asset Tag": "patrimonio",
		"modelo":    "Model Name",
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"patrimonio", "model_name"}, next.Items[0].Keys())
}

func TestApplySkipsIdentityColumns(t *testing.T) {
	snap, catID := laptopCategory(t)
	table := Table{
		Headers: []string{"id", "Patrimonio", "categoryId"},
		Rows:    [][]string{{"legacy-7", "1001", "other"}},
	}

	next, res, err := Apply(snap, catID, table, Options{CreateFields: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, res.Skipped, "NormalizeKey lower-cases categoryId so it is a plain column")
	it := next.Items[0]
	assert.NotEqual(t, "legacy-7", it.ID)
	assert.Equal(t, catID, it.CategoryID)
	assert.Equal(t, []string{"patrimonio", "categoryid"}, it.Keys())
}

func TestApplyErrorsLeaveSnapshotUntouched(t *testing.T) {
	tests := []struct {
		name  string
		catID func(string) string
		table Table
		opts  Options
		err   error
	}{
		{
			name:  "unknown category",
			catID: func(string) string { return "missing" },
			table: Table{Headers: []string{"a"}, Rows: [][]string{{"1"}}},
			err:   types.ErrCategoryNotFound,
		},
		{
			name:  "no headers",
			table: Table{},
			err:   ErrEmptyTable,
		},
		{
			name:  "only blank headers",
			table: Table{Headers: []string{" ", ""}, Rows: [][]string{{"1", "2"}}},
			err:   ErrEmptyTable,
		},
		{
			name:  "duplicate normalized header",
			table: Table{Headers: []string{"Serial Number", "serial  number"}, Rows: [][]string{{"1", "2"}}},
			err:   ErrDuplicateHeader,
		},
		{
			name:  "mapping collides with another column",
			table: Table{Headers: []string{"Tag", "Patrimonio"}, Rows: [][]string{{"1", "2"}}},
			opts:  Options{Mapping: map[string]string{"Tag": "patrimonio"}},
			err:   ErrDuplicateHeader,
		},
		{
			name:  "empty mapping target",
			table: Table{Headers: []string{"Tag"}, Rows: [][]string{{"1"}}},
			opts:  Options{Mapping: map[string]string{"Tag": "  "}},
			err:   ErrMappingTargetEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, catID := laptopCategory(t)
			before := snap.Clone()
			if tt.catID != nil {
				catID = tt.catID(catID)
			}

			next, res, err := Apply(snap, catID, tt.table, tt.opts)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, next)
			assert.Empty(t, res.Items)
			assert.Equal(t, before, snap)
		})
	}
}

func TestApplyHeaderOnlyTable(t *testing.T) {
	snap, catID := laptopCategory(t)
	next, res, err := Apply(snap, catID, Table{Headers: []string{"Setor"}}, Options{CreateFields: true})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	require.Len(t, res.Fields, 1)
	assert.Len(t, next.FieldsOf(catID), 2)
}
