package email

import "html/template"

const planChangedTemplate = `
{{define "plan_changed"}}
<div style="font-family: sans-serif; max-width: 560px; margin: 0 auto;">
  <h2>Plano atualizado 🎉</h2>
  <p>Olá, {{.BusinessName}}!</p>
  <p>Sua assinatura do Doceria Pro agora está no plano <strong>{{.PlanLabel}}</strong>{{if .PriceLabel}} ({{.PriceLabel}}){{end}}.</p>
  <p>Bons pedidos e boas vendas!</p>
  <p>— Equipe Doceria Pro</p>
</div>
{{end}}`

const paymentFailedTemplate = `
{{define "payment_failed"}}
<div style="font-family: sans-serif; max-width: 560px; margin: 0 auto;">
  <h2>Problema com seu pagamento</h2>
  <p>Olá, {{.BusinessName}}.</p>
  <p>Não conseguimos processar o pagamento da sua assinatura e sua conta voltou para o plano <strong>Free</strong>.</p>
  <p>Atualize sua forma de pagamento para reativar os recursos do seu plano — seus dados continuam guardados.</p>
  <p>— Equipe Doceria Pro</p>
</div>
{{end}}`

const subscriptionCanceledTemplate = `
{{define "subscription_canceled"}}
<div style="font-family: sans-serif; max-width: 560px; margin: 0 auto;">
  <h2>Assinatura cancelada</h2>
  <p>Olá, {{.BusinessName}}.</p>
  <p>Sua assinatura foi cancelada e sua conta está no plano <strong>Free</strong>. Sentiremos sua falta!</p>
  <p>Você pode voltar quando quiser — tudo continua salvo.</p>
  <p>— Equipe Doceria Pro</p>
</div>
{{end}}`

const winBackTemplate = `
{{define "win_back"}}
<div style="font-family: sans-serif; max-width: 560px; margin: 0 auto;">
  <h2>Que tal voltar? 🍫</h2>
  <p>Olá, {{.BusinessName}}.</p>
  <p>Sua assinatura parou por um problema de pagamento. Basta atualizar sua forma de pagamento para recuperar pedidos ilimitados e os cronogramas de marketing com IA.</p>
  <p>— Equipe Doceria Pro</p>
</div>
{{end}}`

const monthlySummaryTemplate = `
{{define "monthly_summary"}}
<div style="font-family: sans-serif; max-width: 560px; margin: 0 auto;">
  <h2>Resumo de {{.Month}}</h2>
  <p>Olá, {{.BusinessName}}! Aqui está o fechamento do seu mês:</p>
  <ul>
    <li>Pedidos: <strong>{{.OrderCount}}</strong></li>
    <li>Receitas: <strong>R$ {{printf "%.2f" .TotalIncome}}</strong></li>
    <li>Despesas: <strong>R$ {{printf "%.2f" .TotalExpense}}</strong></li>
    <li>Lucro líquido: <strong>R$ {{printf "%.2f" .NetProfit}}</strong></li>
  </ul>
  <p>— Equipe Doceria Pro</p>
</div>
{{end}}`

func loadTemplates() (*template.Template, error) {
	t := template.New("emails")
	for _, raw := range []string{
		planChangedTemplate,
		paymentFailedTemplate,
		subscriptionCanceledTemplate,
		winBackTemplate,
		monthlySummaryTemplate,
	} {
		if _, err := t.Parse(raw); err != nil {
			return nil, err
		}
	}
	return t, nil
}
