package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v74"

	"doceria_backend/pkg/plan"
)

// ErrUnhandledEvent marks Stripe event types outside the closed set the
// state machine reacts to. Such deliveries are acknowledged untouched.
var ErrUnhandledEvent = errors.New("billing: unhandled event type")

// Event is the closed union of payment lifecycle events that can drive
// a plan transition. Each variant is built by ParseEvent right after
// signature verification; raw payloads never reach the state machine.
type Event interface {
	eventName() string
}

type CheckoutCompleted struct {
	CustomerRef    string
	ConfectionerID uint
	Plan           plan.ID
}

type SubscriptionUpdated struct {
	CustomerRef string
	Plan        plan.ID
	Active      bool
}

type SubscriptionCanceled struct {
	CustomerRef string
}

type PaymentFailed struct {
	CustomerRef string
}

type PaymentSucceeded struct {
	CustomerRef string
	Plan        plan.ID
}

func (CheckoutCompleted) eventName() string    { return "checkout.session.completed" }
func (SubscriptionUpdated) eventName() string  { return "customer.subscription.updated" }
func (SubscriptionCanceled) eventName() string { return "customer.subscription.deleted" }
func (PaymentFailed) eventName() string        { return "invoice.payment_failed" }
func (PaymentSucceeded) eventName() string     { return "invoice.payment_succeeded" }

// planFromMetadata resolves the plan intent carried in Stripe metadata.
// Checkout and subscription metadata always carry "plan" for sessions
// we created; a missing value defaults to starter, matching how the
// checkout flow has always behaved.
func planFromMetadata(meta map[string]string) (plan.ID, error) {
	raw, ok := meta["plan"]
	if !ok || raw == "" {
		return plan.Starter, nil
	}
	id := plan.ID(raw)
	if !plan.Valid(id) {
		return "", fmt.Errorf("billing: metadata names unknown plan %q", raw)
	}
	return id, nil
}

// ParseEvent turns a verified Stripe event into one of the closed
// event variants. Unknown event types return ErrUnhandledEvent;
// malformed payloads of known types return a parse error.
func ParseEvent(ev stripe.Event) (Event, error) {
	switch ev.Type {
	case "checkout.session.completed":
		var session struct {
			Customer string            `json:"customer"`
			Metadata map[string]string `json:"metadata"`
		}
		if err := json.Unmarshal(ev.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("billing: decode checkout session: %w", err)
		}
		p, err := planFromMetadata(session.Metadata)
		if err != nil {
			return nil, err
		}
		confectionerID, err := strconv.ParseUint(session.Metadata["confectioner_id"], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("billing: checkout session without confectioner_id metadata")
		}
		return CheckoutCompleted{
			CustomerRef:    session.Customer,
			ConfectionerID: uint(confectionerID),
			Plan:           p,
		}, nil

	case "customer.subscription.updated":
		var sub struct {
			Customer string            `json:"customer"`
			Status   string            `json:"status"`
			Metadata map[string]string `json:"metadata"`
		}
		if err := json.Unmarshal(ev.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("billing: decode subscription: %w", err)
		}
		p, err := planFromMetadata(sub.Metadata)
		if err != nil {
			return nil, err
		}
		return SubscriptionUpdated{
			CustomerRef: sub.Customer,
			Plan:        p,
			Active:      sub.Status == string(stripe.SubscriptionStatusActive),
		}, nil

	case "customer.subscription.deleted":
		var sub struct {
			Customer string `json:"customer"`
		}
		if err := json.Unmarshal(ev.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("billing: decode subscription: %w", err)
		}
		return SubscriptionCanceled{CustomerRef: sub.Customer}, nil

	case "invoice.payment_failed":
		var invoice struct {
			Customer string `json:"customer"`
		}
		if err := json.Unmarshal(ev.Data.Raw, &invoice); err != nil {
			return nil, fmt.Errorf("billing: decode invoice: %w", err)
		}
		return PaymentFailed{CustomerRef: invoice.Customer}, nil

	case "invoice.payment_succeeded":
		var invoice struct {
			Customer string `json:"customer"`
			Lines    struct {
				Data []struct {
					Metadata map[string]string `json:"metadata"`
				} `json:"data"`
			} `json:"lines"`
		}
		if err := json.Unmarshal(ev.Data.Raw, &invoice); err != nil {
			return nil, fmt.Errorf("billing: decode invoice: %w", err)
		}
		meta := map[string]string{}
		if len(invoice.Lines.Data) > 0 {
			meta = invoice.Lines.Data[0].Metadata
		}
		p, err := planFromMetadata(meta)
		if err != nil {
			return nil, err
		}
		return PaymentSucceeded{CustomerRef: invoice.Customer, Plan: p}, nil
	}

	return nil, ErrUnhandledEvent
}
