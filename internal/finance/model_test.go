package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestResolveCanonical(t *testing.T) {
	typ, amount := CreateRequest{Type: TypeGain, Amount: ptr(120.0)}.Resolve()
	assert.Equal(t, TypeGain, typ)
	assert.Equal(t, 120.0, amount)
}

func TestResolveLegacyBuckets(t *testing.T) {
	// Amount defaults to the bucket sum, type to the largest bucket.
	typ, amount := CreateRequest{Expense: 30, Gain: 100, AssetsBuy: 10}.Resolve()
	assert.Equal(t, TypeGain, typ)
	assert.Equal(t, 140.0, amount)

	typ, amount = CreateRequest{Expense: 5, AssetsBuy: 50}.Resolve()
	assert.Equal(t, TypeAssetsBuy, typ)
	assert.Equal(t, 55.0, amount)
}

func TestResolveLegacyTie(t *testing.T) {
	typ, _ := CreateRequest{Expense: 10, Gain: 10}.Resolve()
	assert.Equal(t, TypeExpense, typ)
}

func TestResolveExplicitTypeWithBuckets(t *testing.T) {
	typ, amount := CreateRequest{Type: TypeExpense, Gain: 100}.Resolve()
	assert.Equal(t, TypeExpense, typ)
	assert.Equal(t, 100.0, amount)
}

func TestResolveEmpty(t *testing.T) {
	typ, amount := CreateRequest{}.Resolve()
	assert.Equal(t, TypeExpense, typ)
	assert.Equal(t, 0.0, amount)
}

func TestBuildTotals(t *testing.T) {
	totals := BuildTotals(map[string]float64{
		TypeGain:      500,
		TypeExpense:   120,
		TypeAssetsBuy: 80,
	})

	assert.Equal(t, 500.0, totals.Income)
	assert.Equal(t, 200.0, totals.Expense)
	assert.Equal(t, 300.0, totals.Net)
	assert.Equal(t, 500.0, totals.ByType[TypeGain])
}

func TestBuildTotalsEmpty(t *testing.T) {
	totals := BuildTotals(map[string]float64{})
	assert.Zero(t, totals.Income)
	assert.Zero(t, totals.Expense)
	assert.Zero(t, totals.Net)
}
