package service

import (
	"math/rand"
	"testing"
	"time"

	"mealboard/internal/models"

	"github.com/stretchr/testify/assert"
)

var scoreNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

// Jitter is uniform over [-5, +5), so every branch assertion checks a
// ten-wide window around the deterministic part of the score.
func assertScoreWindow(t *testing.T, base, got float64) {
	t.Helper()
	assert.GreaterOrEqual(t, got, base-5.0)
	assert.Less(t, got, base+5.0)
}

func TestWaitingDays(t *testing.T) {
	tests := []struct {
		name  string
		avg   float64
		rated bool
		want  int
	}{
		{"unrated", 0, false, 60},
		{"perfect", 5, true, 30},
		{"great", 4.2, true, 45},
		{"exactly four", 4, true, 45},
		{"fine", 3.5, true, 60},
		{"exactly three", 3, true, 60},
		{"poor", 2.9, true, 90},
		{"terrible", 1, true, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, waitingDays(tt.avg, tt.rated))
		})
	}
}

func TestScoreRecipeNeverCooked(t *testing.T) {
	r := models.RecipeLite{ID: strPtr("r1"), Title: "Fresh Find"}

	scored := scoreRecipe(r, map[string]struct{}{}, map[string]bool{}, scoreNow, newTestRand())

	assertScoreWindow(t, neverCookedBonus, scored.Score)
}

func TestScoreRecipeExternalRatingTiers(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		base float64
	}{
		{"five stars", 5, topRatedBonus},
		{"above four", 4.5, highRatedBonus},
		{"above three", 3.5, okRatedBonus},
		{"exactly four", 4, okRatedBonus},
		{"three or worse", 3, poorRatedMalus},
		{"one star", 1, poorRatedMalus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := models.RecipeLite{SrcLink: strPtr("https://example.com/r"), Title: tt.name, Rate: floatPtr(tt.rate)}

			scored := scoreRecipe(r, map[string]struct{}{}, map[string]bool{}, scoreNow, newTestRand())

			assertScoreWindow(t, tt.base, scored.Score)
		})
	}
}

func TestScoreRecipeDuplicateTitle(t *testing.T) {
	visited := map[string]bool{}
	first := models.RecipeLite{ID: strPtr("r1"), Title: "Lasagna"}
	second := models.RecipeLite{SrcLink: strPtr("https://example.com/lasagna"), Title: "Lasagna", Rate: floatPtr(5)}

	rng := newTestRand()
	scoreRecipe(first, map[string]struct{}{}, visited, scoreNow, rng)
	scored := scoreRecipe(second, map[string]struct{}{}, visited, scoreNow, rng)

	// The public rating is ignored once the title has been seen, and
	// the score pins to the threshold with no jitter so the strict >
	// feed filter always drops it.
	assert.Equal(t, float64(duplicateTitleScore), scored.Score)
	assert.False(t, scored.Score > feedScoreThreshold)
}

func TestScoreRecipeOnMenu(t *testing.T) {
	r := models.RecipeLite{ID: strPtr("r1"), Title: "Tonight's Dinner"}
	menu := map[string]struct{}{"r1": {}}

	scored := scoreRecipe(r, menu, map[string]bool{}, scoreNow, newTestRand())

	// The menu penalty stacks with the never-cooked bonus and still
	// lands far below the feed threshold.
	assertScoreWindow(t, onMenuPenalty+neverCookedBonus, scored.Score)
	assert.False(t, scored.Score > feedScoreThreshold)
}

func TestScoreRecipeInsideCooldown(t *testing.T) {
	r := models.RecipeLite{
		ID:    strPtr("r1"),
		Title: "Taco Night",
		History: []models.RecipeRecord{
			{Timestamp: scoreNow.AddDate(0, 0, -20), Rating: floatPtr(5)},
		},
	}

	scored := scoreRecipe(r, map[string]struct{}{}, map[string]bool{}, scoreNow, newTestRand())

	// Cooked 20 days ago with a 30 day cool-down: no resurface bonus.
	assertScoreWindow(t, 0, scored.Score)
}

func TestScoreRecipeResurfacesAfterCooldown(t *testing.T) {
	r := models.RecipeLite{
		ID:    strPtr("r1"),
		Title: "Taco Night",
		History: []models.RecipeRecord{
			{Timestamp: scoreNow.AddDate(0, 0, -31), Rating: floatPtr(5)},
		},
	}

	scored := scoreRecipe(r, map[string]struct{}{}, map[string]bool{}, scoreNow, newTestRand())

	assertScoreWindow(t, avgRatingWeight*5+resurfaceBonus, scored.Score)
}

func TestScoreRecipeUnratedHistory(t *testing.T) {
	recent := models.RecipeLite{
		ID:    strPtr("r1"),
		Title: "Mystery Stew",
		History: []models.RecipeRecord{
			{Timestamp: scoreNow.AddDate(0, 0, -59)},
		},
	}
	old := models.RecipeLite{
		ID:    strPtr("r2"),
		Title: "Forgotten Stew",
		History: []models.RecipeRecord{
			{Timestamp: scoreNow.AddDate(0, 0, -61)},
		},
	}

	scoredRecent := scoreRecipe(recent, map[string]struct{}{}, map[string]bool{}, scoreNow, newTestRand())
	scoredOld := scoreRecipe(old, map[string]struct{}{}, map[string]bool{}, scoreNow, newTestRand())

	// Unrated history waits 60 days, then resurfaces without the
	// average-rating term.
	assertScoreWindow(t, 0, scoredRecent.Score)
	assertScoreWindow(t, resurfaceBonus, scoredOld.Score)
}

func TestScoreRecipeMarksVisited(t *testing.T) {
	visited := map[string]bool{}
	r := models.RecipeLite{ID: strPtr("r1"), Title: "Pad Thai"}

	scoreRecipe(r, map[string]struct{}{}, visited, scoreNow, newTestRand())

	assert.True(t, visited["Pad Thai"])
}

func TestSummarizeHistory(t *testing.T) {
	history := []models.RecipeRecord{
		{Timestamp: scoreNow.AddDate(0, 0, -30), Rating: floatPtr(4)},
		{Timestamp: scoreNow.AddDate(0, 0, -10), Rating: floatPtr(2)},
		{Timestamp: scoreNow.AddDate(0, 0, -20)},
	}

	mostRecent, avg, rated := summarizeHistory(history)

	assert.Equal(t, scoreNow.AddDate(0, 0, -10), mostRecent)
	assert.InDelta(t, 3.0, avg, 1e-9)
	assert.True(t, rated)
}

func TestSummarizeHistoryUnrated(t *testing.T) {
	history := []models.RecipeRecord{
		{Timestamp: scoreNow.AddDate(0, 0, -3)},
	}

	mostRecent, avg, rated := summarizeHistory(history)

	assert.Equal(t, scoreNow.AddDate(0, 0, -3), mostRecent)
	assert.Zero(t, avg)
	assert.False(t, rated)
}
