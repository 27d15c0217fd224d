package part

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummariseWeight_Empty(t *testing.T) {
	s := SummariseWeight(nil)
	assert.Equal(t, 0, s.TotalGrams)
	assert.Empty(t, s.Categories)
}

func TestSummariseWeight_GroupsByCategory(t *testing.T) {
	drivetrain := uuid.New()
	wheels := uuid.New()
	dtName := "Drivetrain"
	whName := "Wheels"

	parts := []Part{
		{Name: "Chain", CategoryID: &drivetrain, CategoryName: &dtName, WeightGrams: 250},
		{Name: "Cassette", CategoryID: &drivetrain, CategoryName: &dtName, WeightGrams: 350},
		{Name: "Front wheel", CategoryID: &wheels, CategoryName: &whName, WeightGrams: 900},
		{Name: "Mystery bolt", WeightGrams: 500},
	}

	s := SummariseWeight(parts)
	assert.Equal(t, 2000, s.TotalGrams)
	require.Len(t, s.Categories, 3)

	// First-seen order.
	assert.Equal(t, "Drivetrain", s.Categories[0].CategoryName)
	assert.Equal(t, 600, s.Categories[0].Grams)
	assert.InDelta(t, 0.30, s.Categories[0].Share, 0.0001)

	assert.Equal(t, "Wheels", s.Categories[1].CategoryName)
	assert.InDelta(t, 0.45, s.Categories[1].Share, 0.0001)

	assert.Equal(t, "Uncategorised", s.Categories[2].CategoryName)
	assert.Empty(t, s.Categories[2].CategoryID)
	assert.InDelta(t, 0.25, s.Categories[2].Share, 0.0001)
}

func TestSummariseWeight_ZeroTotalHasZeroShares(t *testing.T) {
	parts := []Part{{Name: "Sticker", WeightGrams: 0}}

	s := SummariseWeight(parts)
	assert.Equal(t, 0, s.TotalGrams)
	require.Len(t, s.Categories, 1)
	assert.Zero(t, s.Categories[0].Share)
}
