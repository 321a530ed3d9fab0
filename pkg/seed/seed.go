package seed

import (
	"encoding/json"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/plan"
)

// SeedDemoData provisions a demo confectioner with a few products for
// local development. Guarded by SEED_DEMO_DATA in main.
func SeedDemoData(db *gorm.DB) {
	var existing model.Confectioner
	if err := db.Where("email = ?", "demo@doceriapro.com.br").First(&existing).Error; err == nil {
		log.Println("Demo data already seeded")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing demo password: %v", err)
		return
	}

	confectioner := model.Confectioner{
		Name:               "Maria Silva",
		Email:              "demo@doceriapro.com.br",
		Password:           string(hashed),
		BusinessName:       "Doceria da Maria",
		City:               "São Paulo",
		Plan:               string(plan.Free),
		OnboardingComplete: true,
	}
	if err := db.Create(&confectioner).Error; err != nil {
		log.Printf("Error creating demo confectioner: %v", err)
		return
	}

	truffleIngredients, _ := json.Marshal([]model.Ingredient{
		{Name: "Chocolate meio amargo", Quantity: 0.2, Unit: "kg", UnitCost: 45},
		{Name: "Creme de leite", Quantity: 0.1, Unit: "l", UnitCost: 12},
	})

	products := []model.Product{
		{
			ConfectionerID: confectioner.ID,
			Name:           "Trufa de Chocolate",
			Description:    "Trufa artesanal de chocolate meio amargo",
			Price:          6.5,
			Cost:           10.2,
			Category:       string(model.CategoryTruffle),
			Active:         true,
			Ingredients:    datatypes.JSON(truffleIngredients),
		},
		{
			ConfectionerID: confectioner.ID,
			Name:           "Kit Festa 50 doces",
			Description:    "Kit com 50 docinhos sortidos",
			Price:          120,
			Cost:           55,
			Category:       string(model.CategoryKit),
			Active:         true,
		},
	}

	for _, product := range products {
		if err := db.Create(&product).Error; err != nil {
			log.Printf("Error creating demo product %s: %v", product.Name, err)
		}
	}

	log.Println("Demo data seeded successfully!")
}
