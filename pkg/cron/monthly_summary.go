package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/database"
	"doceria_backend/pkg/email"
)

func InitMonthlySummaryCron() {
	c := cron.New()

	// First day of the month, 08:00: close out the previous month.
	_, err := c.AddFunc("0 8 1 * *", func() {
		sendMonthlySummaries()
	})
	if err != nil {
		log.Printf("Could not initialize monthly summary cron: %v", err)
		return
	}

	c.Start()
}

func sendMonthlySummaries() {
	if email.GlobalEmailService == nil {
		return
	}

	log.Println("Sending monthly business summaries...")

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevStart := monthStart.AddDate(0, -1, 0)

	var confectioners []model.Confectioner
	if err := database.GetDB().Find(&confectioners).Error; err != nil {
		log.Printf("Error fetching confectioners: %v", err)
		return
	}

	for _, confectioner := range confectioners {
		db := database.GetDB()

		var orderCount int64
		db.Model(&model.Order{}).
			Where("confectioner_id = ? AND created_at >= ? AND created_at < ?",
				confectioner.ID, prevStart, monthStart).
			Count(&orderCount)

		var income, expense float64
		db.Model(&model.Transaction{}).
			Where("confectioner_id = ? AND type = ? AND date >= ? AND date < ?",
				confectioner.ID, string(model.TransactionIncome), prevStart, monthStart).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&income)
		db.Model(&model.Transaction{}).
			Where("confectioner_id = ? AND type = ? AND date >= ? AND date < ?",
				confectioner.ID, string(model.TransactionExpense), prevStart, monthStart).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&expense)

		if orderCount == 0 && income == 0 && expense == 0 {
			continue
		}

		err := email.GlobalEmailService.SendMonthlySummaryEmail(confectioner.Email, email.MonthlySummaryData{
			BusinessName: confectioner.BusinessName,
			Month:        prevStart.Format("01/2006"),
			OrderCount:   orderCount,
			TotalIncome:  income,
			TotalExpense: expense,
			NetProfit:    income - expense,
		})
		if err != nil {
			log.Printf("Error sending monthly summary to %s: %v", confectioner.Email, err)
		}
	}
}
