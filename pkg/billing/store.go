package billing

import (
	"errors"

	"gorm.io/gorm"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/plan"
)

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a billing store backed by GORM.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) LinkCustomer(confectionerID uint, customerRef string, p plan.ID, source TransitionSource) (*model.Confectioner, error) {
	var c model.Confectioner
	if err := s.db.First(&c, confectionerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"plan":                   string(p),
		"stripe_customer_id":     customerRef,
		"last_transition_source": string(source),
	}
	if err := s.db.Model(&c).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *gormStore) SetPlanByCustomerRef(customerRef string, p plan.ID, source TransitionSource) (*model.Confectioner, error) {
	var c model.Confectioner
	err := s.db.Where("stripe_customer_id = ?", customerRef).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"plan":                   string(p),
		"last_transition_source": string(source),
	}
	if err := s.db.Model(&c).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
