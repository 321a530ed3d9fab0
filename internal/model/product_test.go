package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func productWithRecipe(t *testing.T, price float64, ingredients []Ingredient) *Product {
	t.Helper()
	raw, err := json.Marshal(ingredients)
	require.NoError(t, err)
	return &Product{Price: price, Ingredients: datatypes.JSON(raw)}
}

func TestIngredientCost(t *testing.T) {
	p := productWithRecipe(t, 6.5, []Ingredient{
		{Name: "Chocolate", Quantity: 0.2, Unit: "kg", UnitCost: 45},
		{Name: "Creme de leite", Quantity: 0.1, Unit: "l", UnitCost: 12},
	})

	cost, err := p.IngredientCost()
	require.NoError(t, err)
	assert.InDelta(t, 10.2, cost, 0.001)
}

func TestIngredientCostWithoutRecipe(t *testing.T) {
	p := &Product{Price: 10}

	cost, err := p.IngredientCost()
	require.NoError(t, err)
	assert.Zero(t, cost)

	list, err := p.IngredientList()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMarginPercent(t *testing.T) {
	p := &Product{Price: 15, Cost: 10}
	assert.InDelta(t, 50, p.MarginPercent(), 0.001)

	// No cost data means no meaningful margin.
	assert.Zero(t, (&Product{Price: 15}).MarginPercent())
}
