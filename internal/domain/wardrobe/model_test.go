package wardrobe_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherfit/internal/domain/wardrobe"
)

func TestItemValidateRequiresCanonicalEnums(t *testing.T) {
	valid := wardrobe.Item{ID: 3, Category: wardrobe.CategoryTop, Insulation: wardrobe.InsulationLight, Formality: wardrobe.FormalityCasual}
	require.NoError(t, valid.Validate())

	upperCategory := valid
	upperCategory.Category = "Top"
	require.ErrorContains(t, upperCategory.Validate(), `category "Top" is not canonical`)

	upperInsulation := valid
	upperInsulation.Insulation = "LIGHT"
	require.ErrorContains(t, upperInsulation.Validate(), `insulation level "LIGHT" is not canonical`)

	unknown := valid
	unknown.Formality = "black tie"
	require.ErrorContains(t, unknown.Validate(), `unknown formality "black tie"`)
}

func TestListResponseWireShapes(t *testing.T) {
	empty, err := json.Marshal(wardrobe.ListResponse{})
	require.NoError(t, err)
	require.JSONEq(t, `{"items":[],"total":0}`, string(empty))

	paged, err := json.Marshal(wardrobe.ListResponse{Paged: true, TotalItems: 4, TotalPages: 2, CurrentPage: 3})
	require.NoError(t, err)
	require.JSONEq(t, `{"items":[],"totalItems":4,"totalPages":2,"currentPage":3}`, string(paged))

	var decoded wardrobe.ListResponse
	require.NoError(t, json.Unmarshal(paged, &decoded))
	require.True(t, decoded.Paged)
	require.Equal(t, 2, decoded.TotalPages)

	require.NoError(t, json.Unmarshal(empty, &decoded))
	require.False(t, decoded.Paged)
	require.Zero(t, decoded.Total)
}
