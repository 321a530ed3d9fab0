package plan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanCreateOrderFiniteBoundary(t *testing.T) {
	free := Get(Free) // limit 10

	assert.True(t, CanCreateOrder(free, 0))
	assert.True(t, CanCreateOrder(free, 9))
	assert.False(t, CanCreateOrder(free, 10))
	assert.False(t, CanCreateOrder(free, 11))
}

func TestCanCreateOrderUnlimited(t *testing.T) {
	starter := Get(Starter)

	for _, count := range []int{0, 1, 10, 10_000, math.MaxInt32} {
		assert.True(t, CanCreateOrder(starter, count), "count=%d", count)
	}
}

func TestCanCreateOrderZeroLimitAlwaysDenies(t *testing.T) {
	def := Definition{ID: Free, MonthlyOrderLimit: 0}

	assert.False(t, CanCreateOrder(def, 0))
	assert.False(t, CanCreateOrder(def, 1))
}

func TestCanGenerateContentDisabledOnFree(t *testing.T) {
	free := Get(Free) // generation limit 0 = feature off

	for _, today := range []int{0, 1, 4} {
		assert.False(t, CanGenerateContent(free, today), "today=%d", today)
	}
}

func TestCanGenerateContentDailyCapBoundary(t *testing.T) {
	for _, id := range []ID{Starter, Pro} {
		def := Get(id)
		assert.True(t, CanGenerateContent(def, DailyGenerationCap-1), "plan=%s", id)
		assert.False(t, CanGenerateContent(def, DailyGenerationCap), "plan=%s", id)
	}
}

// The daily cap and the advertised monthly figure are independent
// gates; pro advertises 3/month but a day with 5 generations is still
// refused.
func TestCanGenerateContentDailyCapBeatsMonthlyFigure(t *testing.T) {
	pro := Get(Pro)

	assert.Equal(t, 3, pro.MonthlyGenerationLimit)
	assert.False(t, CanGenerateContent(pro, 5))
}

func TestCanViewAdvancedReports(t *testing.T) {
	assert.False(t, CanViewAdvancedReports(Get(Free)))
	assert.False(t, CanViewAdvancedReports(Get(Starter)))
	assert.True(t, CanViewAdvancedReports(Get(Pro)))
}
