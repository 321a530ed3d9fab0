package model

import (
	"gorm.io/gorm"

	"doceria_backend/pkg/plan"
)

// Confectioner is the tenant account. Every row of every other table
// hangs off one of these.
type Confectioner struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	Password     string `json:"-" gorm:"not null"`
	BusinessName string `json:"business_name" gorm:"not null"`

	// Optional profile fields collected during onboarding
	Phone string `json:"phone"`
	City  string `json:"city"`

	// Billing state. Plan only changes through registration defaults or
	// the payment event state machine; LastTransitionSource records which
	// event wrote the current value.
	Plan                 string  `json:"plan" gorm:"type:varchar(16);default:'free';not null"`
	StripeCustomerID     *string `json:"-" gorm:"uniqueIndex"`
	LastTransitionSource string  `json:"-"`

	OnboardingComplete bool `json:"onboarding_complete" gorm:"default:false"`
}

// PlanID maps the stored plan string onto the closed plan set.
func (c *Confectioner) PlanID() plan.ID {
	return plan.Normalize(c.Plan)
}

func (c *Confectioner) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":                  c.ID,
		"name":                c.Name,
		"email":               c.Email,
		"business_name":       c.BusinessName,
		"phone":               c.Phone,
		"city":                c.City,
		"plan":                string(c.PlanID()),
		"onboarding_complete": c.OnboardingComplete,
	}
}
