package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/billing"
	"doceria_backend/pkg/plan"
)

// fakeStore keeps tenant rows in memory with the same lookup keys the
// GORM store uses.
type fakeStore struct {
	byID map[uint]*model.Confectioner
}

func newFakeStore(tenants ...*model.Confectioner) *fakeStore {
	s := &fakeStore{byID: make(map[uint]*model.Confectioner)}
	for _, t := range tenants {
		s.byID[t.ID] = t
	}
	return s
}

func (s *fakeStore) LinkCustomer(id uint, ref string, p plan.ID, source billing.TransitionSource) (*model.Confectioner, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	c.Plan = string(p)
	c.StripeCustomerID = &ref
	c.LastTransitionSource = string(source)
	return c, nil
}

func (s *fakeStore) SetPlanByCustomerRef(ref string, p plan.ID, source billing.TransitionSource) (*model.Confectioner, error) {
	for _, c := range s.byID {
		if c.StripeCustomerID != nil && *c.StripeCustomerID == ref {
			c.Plan = string(p)
			c.LastTransitionSource = string(source)
			return c, nil
		}
	}
	return nil, nil
}

func tenant(id uint, p plan.ID, customerRef string) *model.Confectioner {
	c := &model.Confectioner{Plan: string(p)}
	c.ID = id
	if customerRef != "" {
		ref := customerRef
		c.StripeCustomerID = &ref
	}
	return c
}

func TestCheckoutCompletedLinksAndUpgrades(t *testing.T) {
	store := newFakeStore(tenant(4, plan.Free, ""))
	svc := billing.NewService(store)

	out, err := svc.Apply(billing.CheckoutCompleted{
		CustomerRef:    "cus_1",
		ConfectionerID: 4,
		Plan:           plan.Pro,
	})

	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, plan.Pro, out.Plan)
	assert.Equal(t, "pro", store.byID[4].Plan)
	require.NotNil(t, store.byID[4].StripeCustomerID)
	assert.Equal(t, "cus_1", *store.byID[4].StripeCustomerID)
	assert.Equal(t, string(billing.SourceCheckoutCompleted), store.byID[4].LastTransitionSource)
}

func TestCheckoutCompletedReplayIsIdempotent(t *testing.T) {
	store := newFakeStore(tenant(4, plan.Free, ""))
	svc := billing.NewService(store)
	ev := billing.CheckoutCompleted{CustomerRef: "cus_1", ConfectionerID: 4, Plan: plan.Pro}

	_, err := svc.Apply(ev)
	require.NoError(t, err)
	first := *store.byID[4]

	_, err = svc.Apply(ev)
	require.NoError(t, err)

	assert.Equal(t, first.Plan, store.byID[4].Plan)
	assert.Equal(t, *first.StripeCustomerID, *store.byID[4].StripeCustomerID)
	assert.Equal(t, first.LastTransitionSource, store.byID[4].LastTransitionSource)
}

func TestCancellationForcesFree(t *testing.T) {
	for _, prior := range []plan.ID{plan.Starter, plan.Pro, plan.Free} {
		store := newFakeStore(tenant(1, prior, "cus_1"))
		svc := billing.NewService(store)

		out, err := svc.Apply(billing.SubscriptionCanceled{CustomerRef: "cus_1"})

		require.NoError(t, err)
		assert.True(t, out.Applied)
		assert.Equal(t, "free", store.byID[1].Plan, "prior plan %s", prior)
		assert.Equal(t, string(billing.SourceSubscriptionCanceled), store.byID[1].LastTransitionSource)
	}
}

func TestCheckoutThenCancelEndsOnFree(t *testing.T) {
	store := newFakeStore(tenant(4, plan.Free, ""))
	svc := billing.NewService(store)

	_, err := svc.Apply(billing.CheckoutCompleted{CustomerRef: "cus_1", ConfectionerID: 4, Plan: plan.Pro})
	require.NoError(t, err)
	_, err = svc.Apply(billing.SubscriptionCanceled{CustomerRef: "cus_1"})
	require.NoError(t, err)

	assert.Equal(t, "free", store.byID[4].Plan)
}

func TestUnknownCustomerRefIsAcceptedNoOp(t *testing.T) {
	existing := tenant(9, plan.Pro, "cus_9")
	store := newFakeStore(existing)
	svc := billing.NewService(store)

	events := []billing.Event{
		billing.SubscriptionUpdated{CustomerRef: "cus_5", Plan: plan.Pro, Active: true},
		billing.SubscriptionCanceled{CustomerRef: "cus_5"},
		billing.PaymentFailed{CustomerRef: "cus_5"},
		billing.PaymentSucceeded{CustomerRef: "cus_5", Plan: plan.Starter},
	}
	for _, ev := range events {
		out, err := svc.Apply(ev)
		require.NoError(t, err, "%T", ev)
		assert.False(t, out.Applied, "%T", ev)
	}

	// The one linked tenant stayed untouched.
	assert.Equal(t, "pro", existing.Plan)
	assert.Empty(t, existing.LastTransitionSource)
}

func TestCheckoutForUnknownTenantIsAcceptedNoOp(t *testing.T) {
	store := newFakeStore()
	svc := billing.NewService(store)

	out, err := svc.Apply(billing.CheckoutCompleted{CustomerRef: "cus_1", ConfectionerID: 42, Plan: plan.Starter})

	require.NoError(t, err)
	assert.False(t, out.Applied)
}

func TestNonActiveUpdateIsNoOp(t *testing.T) {
	store := newFakeStore(tenant(1, plan.Pro, "cus_1"))
	svc := billing.NewService(store)

	out, err := svc.Apply(billing.SubscriptionUpdated{CustomerRef: "cus_1", Plan: plan.Starter, Active: false})

	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.Equal(t, "pro", store.byID[1].Plan)
}

func TestActiveUpdateSwitchesPlan(t *testing.T) {
	store := newFakeStore(tenant(1, plan.Starter, "cus_1"))
	svc := billing.NewService(store)

	out, err := svc.Apply(billing.SubscriptionUpdated{CustomerRef: "cus_1", Plan: plan.Pro, Active: true})

	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, "pro", store.byID[1].Plan)
}

func TestPaymentFailureThenRecovery(t *testing.T) {
	store := newFakeStore(tenant(1, plan.Pro, "cus_1"))
	svc := billing.NewService(store)

	_, err := svc.Apply(billing.PaymentFailed{CustomerRef: "cus_1"})
	require.NoError(t, err)
	assert.Equal(t, "free", store.byID[1].Plan)
	assert.Equal(t, string(billing.SourcePaymentFailed), store.byID[1].LastTransitionSource)

	_, err = svc.Apply(billing.PaymentSucceeded{CustomerRef: "cus_1", Plan: plan.Pro})
	require.NoError(t, err)
	assert.Equal(t, "pro", store.byID[1].Plan)
	assert.Equal(t, string(billing.SourcePaymentSucceeded), store.byID[1].LastTransitionSource)
}
