package plan

import "fmt"

type ID string

const (
	Free    ID = "free"
	Starter ID = "starter"
	Pro     ID = "pro"
)

// Unlimited marks a quota with no upper bound. Kept as an explicit
// sentinel instead of a large number so boundary checks stay exact.
const Unlimited = -1

// Definition is the compiled-in entitlement set of one plan. The plan
// set is closed; there are no dynamic plans.
type Definition struct {
	ID          ID     `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`

	// PriceCents is the monthly price in centavos. Nil means free.
	PriceCents *int64 `json:"price_cents"`

	// MonthlyOrderLimit caps orders per calendar month. Unlimited (-1)
	// removes the cap; 0 denies every order.
	MonthlyOrderLimit int `json:"monthly_order_limit"`

	// MonthlyGenerationLimit is the advertised number of AI schedules
	// per month. 0 disables the feature entirely. The monthly figure is
	// shown on the pricing page but the enforced limit is the daily cap
	// in entitlement.go.
	MonthlyGenerationLimit int `json:"monthly_generation_limit"`

	AdvancedReports bool `json:"advanced_reports"`

	// StripePriceEnv names the env variable holding the Stripe price ID
	// for paid plans.
	StripePriceEnv string `json:"-"`
}

func cents(v int64) *int64 { return &v }

var definitions = map[ID]Definition{
	Free: {
		ID:                     Free,
		Label:                  "Free",
		Description:            "Para quem está começando",
		PriceCents:             nil,
		MonthlyOrderLimit:      10,
		MonthlyGenerationLimit: 0,
		AdvancedReports:        false,
	},
	Starter: {
		ID:                     Starter,
		Label:                  "Starter",
		Description:            "Para confeiteiras em crescimento",
		PriceCents:             cents(4990),
		MonthlyOrderLimit:      Unlimited,
		MonthlyGenerationLimit: 1,
		AdvancedReports:        false,
		StripePriceEnv:         "STRIPE_PRICE_ID_STARTER",
	},
	Pro: {
		ID:                     Pro,
		Label:                  "Pro",
		Description:            "Para negócios estabelecidos",
		PriceCents:             cents(9700),
		MonthlyOrderLimit:      Unlimited,
		MonthlyGenerationLimit: 3,
		AdvancedReports:        true,
		StripePriceEnv:         "STRIPE_PRICE_ID_PRO",
	},
}

// Get returns the definition for a known plan ID. Asking for a plan
// outside the closed set is a programming error, not a runtime
// condition, so it panics instead of returning an error.
func Get(id ID) Definition {
	def, ok := definitions[id]
	if !ok {
		panic(fmt.Sprintf("plan: unknown plan id %q", id))
	}
	return def
}

// All returns every definition in display order.
func All() []Definition {
	return []Definition{definitions[Free], definitions[Starter], definitions[Pro]}
}

// Valid reports whether id belongs to the closed plan set.
func Valid(id ID) bool {
	_, ok := definitions[id]
	return ok
}

// Normalize maps a stored plan string onto the closed set, falling back
// to Free for anything unrecognized. Used when reading rows written
// before a plan rename, never for webhook payloads (those are rejected
// upstream).
func Normalize(s string) ID {
	id := ID(s)
	if Valid(id) {
		return id
	}
	return Free
}
