package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/billing"
	"doceria_backend/pkg/database"
	"doceria_backend/pkg/email"
	"doceria_backend/pkg/plan"
)

func InitWinBackCron() {
	c := cron.New()

	_, err := c.AddFunc("0 9 * * *", func() {
		sendWinBackReminders()
	})
	if err != nil {
		log.Printf("Could not initialize win-back cron: %v", err)
		return
	}

	c.Start()
}

// sendWinBackReminders nudges tenants who dropped to free because a
// payment failed, three days after the downgrade. last_transition_source
// distinguishes them from voluntary cancellations and accounts that
// never subscribed.
func sendWinBackReminders() {
	if email.GlobalEmailService == nil {
		return
	}

	log.Println("Checking for payment-failed downgrades to win back...")

	windowEnd := time.Now().AddDate(0, 0, -3)
	windowStart := windowEnd.AddDate(0, 0, -1)

	var confectioners []model.Confectioner
	err := database.GetDB().
		Where("plan = ? AND last_transition_source = ? AND updated_at >= ? AND updated_at < ?",
			string(plan.Free), string(billing.SourcePaymentFailed), windowStart, windowEnd).
		Find(&confectioners).Error
	if err != nil {
		log.Printf("Error fetching downgraded confectioners: %v", err)
		return
	}

	log.Printf("Found %d confectioners for win-back reminders", len(confectioners))

	for _, confectioner := range confectioners {
		if err := email.GlobalEmailService.SendWinBackEmail(confectioner.Email, confectioner.BusinessName); err != nil {
			log.Printf("Error sending win-back email to %s: %v", confectioner.Email, err)
		}
	}
}
