package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

var GlobalEmailService *EmailService

type emailPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type PlanChangedData struct {
	BusinessName string
	PlanLabel    string
	PriceLabel   string
}

type PaymentFailedData struct {
	BusinessName string
}

type SubscriptionCanceledData struct {
	BusinessName string
}

type WinBackData struct {
	BusinessName string
}

type MonthlySummaryData struct {
	BusinessName string
	Month        string
	OrderCount   int64
	TotalIncome  float64
	TotalExpense float64
	NetProfit    float64
}

func InitEmailService(apiKey, from string) error {
	if apiKey == "" {
		log.Println("RESEND_API_KEY not set, email notifications disabled")
		return nil
	}

	templates, err := loadTemplates()
	if err != nil {
		return fmt.Errorf("could not parse email templates: %w", err)
	}

	GlobalEmailService = &EmailService{
		apiKey:    apiKey,
		from:      from,
		templates: templates,
	}
	return nil
}

func (s *EmailService) send(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("could not render template %s: %w", templateName, err)
	}

	payload, err := json.Marshal(emailPayload{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email API returned %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
