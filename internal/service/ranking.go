package service

import (
	"math/rand"
	"time"

	"mealboard/internal/models"
)

// Feed scoring weights. Product-tuned values carried over verbatim. A
// duplicate title pins to the feed threshold and fails its strict >
// comparison; the menu penalty sits low enough that the maximum history
// bonus plus jitter (25 + 5) cannot lift a menu recipe back over the
// feed threshold.
const (
	duplicateTitleScore = -400
	onMenuPenalty       = -500
	feedScoreThreshold  = -400

	topRatedBonus   = 10
	highRatedBonus  = 5
	okRatedBonus    = 1
	poorRatedMalus  = -5
	neverCookedBonus = 10
	resurfaceBonus   = 10
	avgRatingWeight  = 3

	jitterSpan = 10 // uniform over [-5, +5)
)

// waitingDays is the cool-down before a cooked recipe may resurface,
// keyed on how well the household rated it.
func waitingDays(avgRating float64, rated bool) int {
	if !rated {
		return 60
	}
	switch {
	case avgRating == 5:
		return 30
	case avgRating >= 4:
		return 45
	case avgRating >= 3:
		return 60
	default:
		return 90
	}
}

// scoreRecipe assigns a feed-ordering score to one recipe. Titles already
// seen in this batch collapse to the duplicate penalty; externally rated
// recipes score on their public rating; everything else scores on the
// household's own usage history. The visited set is updated in place and
// the scored copy is returned, leaving the input untouched.
func scoreRecipe(r models.RecipeLite, menuRecipeIDs map[string]struct{}, visited map[string]bool, now time.Time, rng *rand.Rand) models.RecipeLite {
	if visited[r.Title] {
		// No jitter here: the score must stay exactly at the feed
		// threshold so the strict > comparison always drops it.
		r.Score = duplicateTitleScore
		return r
	}

	var score float64

	switch {
	case r.Rate != nil:
		switch rate := *r.Rate; {
		case rate == 5:
			score = topRatedBonus
		case rate > 4:
			score = highRatedBonus
		case rate > 3:
			score = okRatedBonus
		default:
			score = poorRatedMalus
		}

	default:
		if r.ID != nil {
			if _, onMenu := menuRecipeIDs[*r.ID]; onMenu {
				score += onMenuPenalty
			}
		}

		if len(r.History) > 0 {
			mostRecent, avgRating, rated := summarizeHistory(r.History)
			waiting := time.Duration(waitingDays(avgRating, rated)) * 24 * time.Hour
			if now.Sub(mostRecent) > waiting {
				if rated {
					score += avgRatingWeight * avgRating
				}
				score += resurfaceBonus
			}
		} else {
			score += neverCookedBonus
		}
	}

	score += rng.Float64()*jitterSpan - jitterSpan/2

	r.Score = score
	visited[r.Title] = true
	return r
}

// summarizeHistory reduces the usage history to the only two signals
// ranking cares about: the newest timestamp and the mean explicit rating.
func summarizeHistory(history []models.RecipeRecord) (mostRecent time.Time, avgRating float64, rated bool) {
	var sum float64
	var count int

	for _, record := range history {
		if record.Timestamp.After(mostRecent) {
			mostRecent = record.Timestamp
		}
		if record.Rating != nil {
			sum += *record.Rating
			count++
		}
	}

	if count > 0 {
		return mostRecent, sum / float64(count), true
	}
	return mostRecent, 0, false
}
