package plan

// DailyGenerationCap is the fixed number of AI schedule generations a
// tenant may run per calendar day, independent of tier.
const DailyGenerationCap = 5

// CanCreateOrder reports whether a tenant on def may create another
// order given how many they already created this calendar month. The
// limit is the maximum allowed count: with a limit of N the N-th order
// is the last one admitted.
func CanCreateOrder(def Definition, ordersThisMonth int) bool {
	if def.MonthlyOrderLimit == Unlimited {
		return true
	}
	return ordersThisMonth < def.MonthlyOrderLimit
}

// CanGenerateContent reports whether a tenant on def may run another AI
// generation today. Two independent gates: the plan must include the
// feature at all (MonthlyGenerationLimit > 0) and the fixed daily cap
// must not be reached yet.
func CanGenerateContent(def Definition, generationsToday int) bool {
	if def.MonthlyGenerationLimit <= 0 {
		return false
	}
	return generationsToday < DailyGenerationCap
}

// CanViewAdvancedReports reports whether def unlocks advanced reports.
func CanViewAdvancedReports(def Definition) bool {
	return def.AdvancedReports
}
