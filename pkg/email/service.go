package email

import "fmt"

func priceLabel(priceCents *int64) string {
	if priceCents == nil {
		return ""
	}
	return fmt.Sprintf("R$ %.2f/mês", float64(*priceCents)/100)
}

func (s *EmailService) SendPlanChangedEmail(to, businessName, planLabel string, priceCents *int64) error {
	return s.send(to, "Seu plano Doceria Pro foi atualizado", "plan_changed", PlanChangedData{
		BusinessName: businessName,
		PlanLabel:    planLabel,
		PriceLabel:   priceLabel(priceCents),
	})
}

func (s *EmailService) SendPaymentFailedEmail(to, businessName string) error {
	return s.send(to, "Problema com o pagamento da sua assinatura", "payment_failed", PaymentFailedData{
		BusinessName: businessName,
	})
}

func (s *EmailService) SendSubscriptionCanceledEmail(to, businessName string) error {
	return s.send(to, "Sua assinatura foi cancelada", "subscription_canceled", SubscriptionCanceledData{
		BusinessName: businessName,
	})
}

func (s *EmailService) SendWinBackEmail(to, businessName string) error {
	return s.send(to, "Sentimos sua falta no Doceria Pro", "win_back", WinBackData{
		BusinessName: businessName,
	})
}

func (s *EmailService) SendMonthlySummaryEmail(to string, data MonthlySummaryData) error {
	return s.send(to, "Resumo mensal da sua doceria", "monthly_summary", data)
}
