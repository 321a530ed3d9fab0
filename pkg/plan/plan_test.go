package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKnownPlans(t *testing.T) {
	free := Get(Free)
	assert.Equal(t, Free, free.ID)
	assert.Nil(t, free.PriceCents)
	assert.Equal(t, 10, free.MonthlyOrderLimit)
	assert.Equal(t, 0, free.MonthlyGenerationLimit)
	assert.False(t, free.AdvancedReports)

	starter := Get(Starter)
	require.NotNil(t, starter.PriceCents)
	assert.Equal(t, int64(4990), *starter.PriceCents)
	assert.Equal(t, Unlimited, starter.MonthlyOrderLimit)
	assert.Equal(t, 1, starter.MonthlyGenerationLimit)
	assert.False(t, starter.AdvancedReports)

	pro := Get(Pro)
	require.NotNil(t, pro.PriceCents)
	assert.Equal(t, int64(9700), *pro.PriceCents)
	assert.Equal(t, Unlimited, pro.MonthlyOrderLimit)
	assert.Equal(t, 3, pro.MonthlyGenerationLimit)
	assert.True(t, pro.AdvancedReports)
}

func TestGetUnknownPlanPanics(t *testing.T) {
	assert.Panics(t, func() { Get(ID("enterprise")) })
	assert.Panics(t, func() { Get(ID("")) })
}

func TestAll(t *testing.T) {
	defs := All()
	require.Len(t, defs, 3)
	assert.Equal(t, []ID{Free, Starter, Pro}, []ID{defs[0].ID, defs[1].ID, defs[2].ID})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{"free", Free},
		{"starter", Starter},
		{"pro", Pro},
		{"", Free},
		{"elite", Free},
		{"PRO", Free},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}
