package billing_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"

	"doceria_backend/pkg/billing"
	"doceria_backend/pkg/plan"
)

func stripeEvent(t *testing.T, eventType string, payload string) stripe.Event {
	t.Helper()
	return stripe.Event{
		Type: eventType,
		Data: &stripe.EventData{Raw: json.RawMessage(payload)},
	}
}

func TestParseCheckoutCompleted(t *testing.T) {
	ev, err := billing.ParseEvent(stripeEvent(t, "checkout.session.completed",
		`{"customer":"cus_1","metadata":{"confectioner_id":"4","plan":"pro"}}`))

	require.NoError(t, err)
	checkout, ok := ev.(billing.CheckoutCompleted)
	require.True(t, ok)
	assert.Equal(t, "cus_1", checkout.CustomerRef)
	assert.Equal(t, uint(4), checkout.ConfectionerID)
	assert.Equal(t, plan.Pro, checkout.Plan)
}

func TestParseCheckoutMissingTenantMetadata(t *testing.T) {
	_, err := billing.ParseEvent(stripeEvent(t, "checkout.session.completed",
		`{"customer":"cus_1","metadata":{"plan":"pro"}}`))

	assert.Error(t, err)
}

func TestParseSubscriptionUpdated(t *testing.T) {
	ev, err := billing.ParseEvent(stripeEvent(t, "customer.subscription.updated",
		`{"customer":"cus_1","status":"active","metadata":{"plan":"starter"}}`))

	require.NoError(t, err)
	updated, ok := ev.(billing.SubscriptionUpdated)
	require.True(t, ok)
	assert.True(t, updated.Active)
	assert.Equal(t, plan.Starter, updated.Plan)

	ev, err = billing.ParseEvent(stripeEvent(t, "customer.subscription.updated",
		`{"customer":"cus_1","status":"past_due","metadata":{"plan":"starter"}}`))

	require.NoError(t, err)
	assert.False(t, ev.(billing.SubscriptionUpdated).Active)
}

func TestParseSubscriptionDeleted(t *testing.T) {
	ev, err := billing.ParseEvent(stripeEvent(t, "customer.subscription.deleted",
		`{"customer":"cus_2"}`))

	require.NoError(t, err)
	assert.Equal(t, billing.SubscriptionCanceled{CustomerRef: "cus_2"}, ev)
}

func TestParseInvoiceEvents(t *testing.T) {
	ev, err := billing.ParseEvent(stripeEvent(t, "invoice.payment_failed",
		`{"customer":"cus_3"}`))

	require.NoError(t, err)
	assert.Equal(t, billing.PaymentFailed{CustomerRef: "cus_3"}, ev)

	ev, err = billing.ParseEvent(stripeEvent(t, "invoice.payment_succeeded",
		`{"customer":"cus_3","lines":{"data":[{"metadata":{"plan":"pro"}}]}}`))

	require.NoError(t, err)
	assert.Equal(t, billing.PaymentSucceeded{CustomerRef: "cus_3", Plan: plan.Pro}, ev)
}

// Metadata without a plan key falls back to starter, matching the
// checkout flow's historical default.
func TestParseDefaultsToStarter(t *testing.T) {
	ev, err := billing.ParseEvent(stripeEvent(t, "invoice.payment_succeeded",
		`{"customer":"cus_3","lines":{"data":[]}}`))

	require.NoError(t, err)
	assert.Equal(t, plan.Starter, ev.(billing.PaymentSucceeded).Plan)
}

func TestParseRejectsUnknownPlanMetadata(t *testing.T) {
	_, err := billing.ParseEvent(stripeEvent(t, "customer.subscription.updated",
		`{"customer":"cus_1","status":"active","metadata":{"plan":"elite"}}`))

	assert.Error(t, err)
}

func TestParseUnhandledEventType(t *testing.T) {
	_, err := billing.ParseEvent(stripeEvent(t, "charge.refunded", `{}`))

	assert.ErrorIs(t, err, billing.ErrUnhandledEvent)
}
