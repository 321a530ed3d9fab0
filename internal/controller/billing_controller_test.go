package controller

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74/webhook"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/billing"
	"doceria_backend/pkg/plan"
)

// recordingStore counts writes so tests can assert that rejected or
// ignored deliveries never touch persistence.
type recordingStore struct {
	writes int
}

func (s *recordingStore) LinkCustomer(id uint, ref string, p plan.ID, source billing.TransitionSource) (*model.Confectioner, error) {
	s.writes++
	return nil, nil
}

func (s *recordingStore) SetPlanByCustomerRef(ref string, p plan.ID, source billing.TransitionSource) (*model.Confectioner, error) {
	s.writes++
	return nil, nil
}

func newWebhookApp(t *testing.T, store billing.Store) *fiber.App {
	t.Helper()
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
	InitBillingController(billing.NewService(store))

	app := fiber.New()
	app.Post("/api/webhook", HandleStripeWebhook)
	return app
}

func webhookRequest(payload []byte, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signature)
	return req
}

// signPayload builds a Stripe-Signature header the verifier accepts.
func signPayload(payload []byte, secret string) string {
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	store := &recordingStore{}
	app := newWebhookApp(t, store)

	payload := []byte(`{"id":"evt_1","object":"event","type":"customer.subscription.deleted","data":{"object":{"customer":"cus_1"}}}`)
	resp, err := app.Test(webhookRequest(payload, "t=1,v1=deadbeef"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, store.writes)
}

// A checkout created outside the app (e.g. a payment link) carries no
// confectioner_id metadata. It verifies fine but cannot be applied, so
// it must be acknowledged without a write or Stripe retries it for days.
func TestWebhookAcknowledgesCheckoutWithoutTenantMetadata(t *testing.T) {
	store := &recordingStore{}
	app := newWebhookApp(t, store)

	payload := []byte(`{"id":"evt_1","object":"event","api_version":"2022-11-15","type":"checkout.session.completed","data":{"object":{"customer":"cus_1","metadata":{}}}}`)
	resp, err := app.Test(webhookRequest(payload, signPayload(payload, "whsec_test")))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, store.writes)
}

func TestWebhookAcknowledgesUnknownPlanMetadata(t *testing.T) {
	store := &recordingStore{}
	app := newWebhookApp(t, store)

	payload := []byte(`{"id":"evt_1","object":"event","api_version":"2022-11-15","type":"checkout.session.completed","data":{"object":{"customer":"cus_1","metadata":{"confectioner_id":"4","plan":"enterprise"}}}}`)
	resp, err := app.Test(webhookRequest(payload, signPayload(payload, "whsec_test")))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, store.writes)
}

func TestWebhookAcknowledgesUnhandledEventType(t *testing.T) {
	store := &recordingStore{}
	app := newWebhookApp(t, store)

	payload := []byte(`{"id":"evt_1","object":"event","api_version":"2022-11-15","type":"invoice.created","data":{"object":{"customer":"cus_1"}}}`)
	resp, err := app.Test(webhookRequest(payload, signPayload(payload, "whsec_test")))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, store.writes)
}

func TestWebhookAppliesUsableEvent(t *testing.T) {
	store := &recordingStore{}
	app := newWebhookApp(t, store)

	payload := []byte(`{"id":"evt_1","object":"event","api_version":"2022-11-15","type":"checkout.session.completed","data":{"object":{"customer":"cus_1","metadata":{"confectioner_id":"4","plan":"pro"}}}}`)
	resp, err := app.Test(webhookRequest(payload, signPayload(payload, "whsec_test")))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, store.writes)
}
