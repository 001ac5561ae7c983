package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalyzedItems(t *testing.T) {
	raw := `{"items":[
        {"name":"Grilled chicken breast","quantity":200,"unit":"g","calories":330,"protein":62,"carbs":0,"fat":7},
        {"name":"White rice","quantity":1,"unit":"cup","calories":205,"protein":4,"carbs":45,"fat":0.4}
    ]}`

	items, err := parseAnalyzedItems(raw)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Grilled chicken breast", items[0].Name)
	assert.Equal(t, 205.0, items[1].Calories)
}

func TestParseAnalyzedItemsRejectsBadPayloads(t *testing.T) {
	_, err := parseAnalyzedItems(`garbage`)
	assert.Error(t, err)

	_, err = parseAnalyzedItems(`{"items":[]}`)
	assert.Error(t, err)

	_, err = parseAnalyzedItems(`{"items":[{"name":"","calories":100}]}`)
	assert.Error(t, err)

	_, err = parseAnalyzedItems(`{"items":[{"name":"Soup","calories":-5}]}`)
	assert.Error(t, err)
}

func TestItemsFromAnalysis(t *testing.T) {
	reqs := ItemsFromAnalysis([]AnalyzedItem{
		{Name: "Banana", Quantity: 1, Unit: "piece", Calories: 105, Carbs: 27, Sugar: 14},
	})
	require.Len(t, reqs, 1)
	assert.Equal(t, "Banana", reqs[0].Name)
	assert.Equal(t, 14.0, reqs[0].Sugar)
}
