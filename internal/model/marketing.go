package model

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MarketingPost is one generated post suggestion. Field names follow
// the JSON shape the generation prompt asks for.
type MarketingPost struct {
	Day           int      `json:"dia"`
	Platform      string   `json:"plataforma"`
	Theme         string   `json:"tema"`
	Caption       string   `json:"legenda"`
	Hashtags      []string `json:"hashtags"`
	SuggestedTime string   `json:"horario_sugerido"`
}

// MarketingSchedule holds the generated content for one tenant/month.
// Regenerating the same period replaces the stored content in place.
type MarketingSchedule struct {
	gorm.Model
	ConfectionerID uint `json:"confectioner_id" gorm:"uniqueIndex:idx_schedule_period;not null"`
	Month          int  `json:"month" gorm:"uniqueIndex:idx_schedule_period;not null"`
	Year           int  `json:"year" gorm:"uniqueIndex:idx_schedule_period;not null"`

	Content datatypes.JSON `json:"content" gorm:"type:jsonb"`
}

// Posts decodes the stored schedule content.
func (s *MarketingSchedule) Posts() ([]MarketingPost, error) {
	if len(s.Content) == 0 {
		return []MarketingPost{}, nil
	}
	var posts []MarketingPost
	if err := json.Unmarshal(s.Content, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
