package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doceria_backend/internal/model"
)

func TestApplyProductInputKeepsAbsentFields(t *testing.T) {
	product := model.Product{
		Name:        "Trufa de Chocolate",
		Description: "Trufa artesanal de chocolate meio amargo",
		Price:       6.5,
		Category:    string(model.CategoryTruffle),
		Active:      true,
	}

	// A price-only payload must not blank the other fields.
	require.NoError(t, applyProductInput(&product, &ProductInput{Price: 7}))

	assert.Equal(t, "Trufa de Chocolate", product.Name)
	assert.Equal(t, "Trufa artesanal de chocolate meio amargo", product.Description)
	assert.Equal(t, 7.0, product.Price)
	assert.Equal(t, string(model.CategoryTruffle), product.Category)
	assert.True(t, product.Active)
}

func TestApplyProductInputOverwritesPresentFields(t *testing.T) {
	product := model.Product{Name: "Trufa", Description: "Antiga", Active: true}
	inactive := false

	require.NoError(t, applyProductInput(&product, &ProductInput{
		Name:        "Trufa Premium",
		Description: "Nova descrição",
		Active:      &inactive,
	}))

	assert.Equal(t, "Trufa Premium", product.Name)
	assert.Equal(t, "Nova descrição", product.Description)
	assert.False(t, product.Active)
}

func TestApplyProductInputRefreshesCostFromIngredients(t *testing.T) {
	product := model.Product{Name: "Trufa", Price: 6.5, Cost: 1}

	require.NoError(t, applyProductInput(&product, &ProductInput{
		Ingredients: []model.Ingredient{
			{Name: "Chocolate", Quantity: 0.2, Unit: "kg", UnitCost: 45},
			{Name: "Creme de leite", Quantity: 0.1, Unit: "l", UnitCost: 12},
		},
	}))

	assert.InDelta(t, 10.2, product.Cost, 0.001)
	assert.NotEmpty(t, product.Ingredients)
}
