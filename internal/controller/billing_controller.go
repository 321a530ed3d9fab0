package controller

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74"
	portalsession "github.com/stripe/stripe-go/v74/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/webhook"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/billing"
	"doceria_backend/pkg/database"
	"doceria_backend/pkg/email"
	"doceria_backend/pkg/plan"
	"doceria_backend/pkg/utils/jwt"
)

var billingService *billing.Service

func InitBillingController(service *billing.Service) {
	billingService = service
}

type CheckoutInput struct {
	Plan string `json:"plan" validate:"required"`
}

// ListPlans exposes the compiled-in plan registry for the pricing page.
func ListPlans(c *fiber.Ctx) error {
	return c.JSON(plan.All())
}

// CreateCheckoutSession starts a Stripe subscription checkout for a
// paid plan. The session metadata carries the tenant ID and plan
// intent; the webhook uses them to link the customer after payment.
func CreateCheckoutSession(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(CheckoutInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	planID := plan.ID(input.Plan)
	if !plan.Valid(planID) || planID == plan.Free {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Choose the starter or pro plan",
		})
	}
	def := plan.Get(planID)

	priceID := os.Getenv(def.StripePriceEnv)
	if priceID == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Plan is not available for checkout",
		})
	}

	var confectioner model.Confectioner
	if err := database.GetDB().First(&confectioner, claims.ConfectionerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Account not found",
		})
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	appURL := os.Getenv("APP_URL")
	metadata := map[string]string{
		"confectioner_id": strconv.FormatUint(uint64(claims.ConfectionerID), 10),
		"plan":            string(planID),
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(confectioner.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(appURL + "/dashboard?checkout=success"),
		CancelURL:  stripe.String(appURL + "/dashboard?checkout=cancelled"),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
		Locale: stripe.String("pt-BR"),
	}
	params.Metadata = metadata

	// An existing Stripe customer keeps their billing history attached.
	if confectioner.StripeCustomerID != nil {
		params.Customer = stripe.String(*confectioner.StripeCustomerID)
		params.CustomerEmail = nil
	}

	session, err := checkoutsession.New(params)
	if err != nil {
		// The tenant keeps their current plan; nothing changed yet.
		log.Printf("Could not create checkout session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not start checkout",
		})
	}

	return c.JSON(fiber.Map{
		"url": session.URL,
	})
}

// CreatePortalSession opens the Stripe billing portal for tenants that
// already have a linked customer record.
func CreatePortalSession(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var confectioner model.Confectioner
	if err := database.GetDB().First(&confectioner, claims.ConfectionerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Account not found",
		})
	}

	if confectioner.StripeCustomerID == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "No billing account yet. Subscribe to a plan first.",
		})
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	session, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*confectioner.StripeCustomerID),
		ReturnURL: stripe.String(os.Getenv("APP_URL") + "/settings/plan"),
	})
	if err != nil {
		log.Printf("Could not create portal session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not open billing portal",
		})
	}

	return c.JSON(fiber.Map{
		"url": session.URL,
	})
}

// HandleStripeWebhook verifies, parses and applies payment lifecycle
// events. Only a bad signature is rejected. Verified events we cannot
// use — unhandled types, payloads missing our metadata (checkouts
// created outside the app), unknown tenants — are logged and
// acknowledged so Stripe stops retrying them.
func HandleStripeWebhook(c *fiber.Ctx) error {
	webhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")

	event, err := webhook.ConstructEvent(c.Body(), c.Get("Stripe-Signature"), webhookSecret)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook signature",
		})
	}

	log.Printf("Processing Stripe webhook event: %s", event.Type)

	parsed, err := billing.ParseEvent(event)
	if err != nil {
		if !errors.Is(err, billing.ErrUnhandledEvent) {
			log.Printf("Ignoring unusable %s event: %v", event.Type, err)
		}
		return c.SendStatus(fiber.StatusOK)
	}

	outcome, err := billingService.Apply(parsed)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not process event",
		})
	}

	if outcome.Applied {
		notifyPlanTransition(outcome)
	}

	return c.SendStatus(fiber.StatusOK)
}

func notifyPlanTransition(outcome billing.Outcome) {
	if email.GlobalEmailService == nil {
		return
	}

	confectioner := outcome.Confectioner
	var err error
	switch outcome.Source {
	case billing.SourceCheckoutCompleted, billing.SourceSubscriptionUpdated, billing.SourcePaymentSucceeded:
		def := plan.Get(outcome.Plan)
		err = email.GlobalEmailService.SendPlanChangedEmail(
			confectioner.Email, confectioner.BusinessName, def.Label, def.PriceCents)
	case billing.SourcePaymentFailed:
		err = email.GlobalEmailService.SendPaymentFailedEmail(
			confectioner.Email, confectioner.BusinessName)
	case billing.SourceSubscriptionCanceled:
		err = email.GlobalEmailService.SendSubscriptionCanceledEmail(
			confectioner.Email, confectioner.BusinessName)
	}
	if err != nil {
		log.Printf("Could not send plan transition email: %v", err)
	}
}
