package billing

import (
	"fmt"
	"log"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/plan"
)

// TransitionSource labels which event type last changed a tenant's
// plan; persisted on the tenant row for auditing and win-back flows.
type TransitionSource string

const (
	SourceCheckoutCompleted    TransitionSource = "checkout_completed"
	SourceSubscriptionUpdated  TransitionSource = "subscription_updated"
	SourceSubscriptionCanceled TransitionSource = "subscription_canceled"
	SourcePaymentFailed        TransitionSource = "payment_failed"
	SourcePaymentSucceeded     TransitionSource = "payment_succeeded"
)

// Store is the persistence surface the state machine writes through.
// Both methods are single-row last-write-wins updates; they return
// (nil, nil) when no tenant matches, which the service treats as a
// logged no-op rather than a failure.
type Store interface {
	// LinkCustomer sets the tenant's plan and attaches the Stripe
	// customer reference. Only checkout completion knows the tenant ID;
	// every later event is keyed by the customer reference.
	LinkCustomer(confectionerID uint, customerRef string, p plan.ID, source TransitionSource) (*model.Confectioner, error)

	// SetPlanByCustomerRef updates the plan of whichever tenant is
	// linked to customerRef.
	SetPlanByCustomerRef(customerRef string, p plan.ID, source TransitionSource) (*model.Confectioner, error)
}

// Outcome reports what a delivery did, so the webhook handler can
// notify the tenant without re-reading state.
type Outcome struct {
	// Applied is false for verified events that matched no tenant.
	// Those are still acknowledged to stop the provider from retrying.
	Applied      bool
	Confectioner *model.Confectioner
	Plan         plan.ID
	Source       TransitionSource
}

// Service applies payment lifecycle events to tenant subscriptions.
// Every transition is an absolute field assignment, never a delta, so
// at-least-once delivery replays converge on the same end state.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Apply runs one verified event through the state machine.
func (s *Service) Apply(ev Event) (Outcome, error) {
	switch e := ev.(type) {
	case CheckoutCompleted:
		c, err := s.store.LinkCustomer(e.ConfectionerID, e.CustomerRef, e.Plan, SourceCheckoutCompleted)
		return s.outcome(ev, c, e.Plan, SourceCheckoutCompleted, err)

	case SubscriptionUpdated:
		if !e.Active {
			// A non-active update is not a cancellation; the deletion
			// event handles that.
			log.Printf("billing: ignoring non-active subscription update for %s", e.CustomerRef)
			return Outcome{}, nil
		}
		c, err := s.store.SetPlanByCustomerRef(e.CustomerRef, e.Plan, SourceSubscriptionUpdated)
		return s.outcome(ev, c, e.Plan, SourceSubscriptionUpdated, err)

	case SubscriptionCanceled:
		c, err := s.store.SetPlanByCustomerRef(e.CustomerRef, plan.Free, SourceSubscriptionCanceled)
		return s.outcome(ev, c, plan.Free, SourceSubscriptionCanceled, err)

	case PaymentFailed:
		c, err := s.store.SetPlanByCustomerRef(e.CustomerRef, plan.Free, SourcePaymentFailed)
		return s.outcome(ev, c, plan.Free, SourcePaymentFailed, err)

	case PaymentSucceeded:
		c, err := s.store.SetPlanByCustomerRef(e.CustomerRef, e.Plan, SourcePaymentSucceeded)
		return s.outcome(ev, c, e.Plan, SourcePaymentSucceeded, err)
	}

	return Outcome{}, fmt.Errorf("billing: %T is not a known event", ev)
}

func (s *Service) outcome(ev Event, c *model.Confectioner, p plan.ID, source TransitionSource, err error) (Outcome, error) {
	if err != nil {
		return Outcome{}, err
	}
	if c == nil {
		// Stripe may deliver events for customers we never linked, or
		// retry after linkage happened through another path.
		log.Printf("billing: %s matched no tenant, ignoring", ev.eventName())
		return Outcome{}, nil
	}
	log.Printf("billing: %s moved confectioner %d to plan %s", ev.eventName(), c.ID, p)
	return Outcome{Applied: true, Confectioner: c, Plan: p, Source: source}, nil
}
