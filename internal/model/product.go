package model

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product Categories
type ProductCategory string

const (
	CategoryCake    ProductCategory = "bolo"
	CategoryTruffle ProductCategory = "trufa"
	CategorySweet   ProductCategory = "docinho"
	CategoryDessert ProductCategory = "sobremesa"
	CategoryKit     ProductCategory = "kit"
)

// Ingredient is one line of a product's recipe. Quantity is expressed
// in the ingredient's own unit; UnitCost is the price of one unit.
type Ingredient struct {
	Name     string  `json:"nome"`
	Quantity float64 `json:"quantidade"`
	Unit     string  `json:"unidade"`
	UnitCost float64 `json:"custo_unitario"`
}

type Product struct {
	gorm.Model
	ConfectionerID uint   `json:"confectioner_id" gorm:"index;not null"`
	Name           string `json:"name" gorm:"not null"`
	Description    string `json:"description" gorm:"type:text"`

	Price float64 `json:"price" gorm:"not null"`
	// Cost is kept in sync with the ingredient list when one exists.
	Cost float64 `json:"cost"`

	Category string `json:"category"`
	Active   bool   `json:"active" gorm:"default:true"`
	PhotoURL string `json:"photo_url"`

	Ingredients datatypes.JSON `json:"ingredients" gorm:"type:jsonb"`
}

// IngredientList decodes the stored recipe. An empty column yields an
// empty list, not an error.
func (p *Product) IngredientList() ([]Ingredient, error) {
	if len(p.Ingredients) == 0 {
		return []Ingredient{}, nil
	}
	var list []Ingredient
	if err := json.Unmarshal(p.Ingredients, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// IngredientCost sums quantity * unit cost over the recipe.
func (p *Product) IngredientCost() (float64, error) {
	list, err := p.IngredientList()
	if err != nil {
		return 0, err
	}
	var total float64
	for _, ing := range list {
		total += ing.Quantity * ing.UnitCost
	}
	return total, nil
}

// MarginPercent returns the profit margin over cost. A product without
// cost data reports zero rather than a meaningless figure.
func (p *Product) MarginPercent() float64 {
	if p.Cost <= 0 {
		return 0
	}
	return (p.Price - p.Cost) / p.Cost * 100
}
