package models

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID                  uuid.UUID      `db:"id"`
	AuthorID            uuid.UUID      `db:"author_id"`
	Title               string         `db:"title"`
	PermissionsRequired string         `db:"permissions_required"`
	Instructions        []string       `db:"instructions"`
	ImgLink             string         `db:"img_link"`
	Servings            *string        `db:"servings"`
	TimeEstimate        []string       `db:"time_estimate"` // total time, prep time, cook time
	SrcLink             string         `db:"src_link"`
	SrcName             *string        `db:"src_name"`
	Ingredients         []string       `db:"ingredients"`
	Tags                []string       `db:"tags"`
	History             []RecipeRecord `db:"-"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

// RecipeRecord is one usage event: the household cooked the recipe at
// Timestamp and optionally rated it. Rows are append-only.
type RecipeRecord struct {
	RecipeID    uuid.UUID `db:"recipe_id"`
	HouseholdID uuid.UUID `db:"household_id"`
	Timestamp   time.Time `db:"timestamp"`
	Rating      *float64  `db:"rating"`
}

// RecipeLite is the projection the feed and search engines work with.
// Either ID (household-owned) or SrcLink (externally sourced) identifies it.
// Score is transient output of the ranking scorer and is never persisted.
type RecipeLite struct {
	ID      *string        `json:"id,omitempty"`
	SrcLink *string        `json:"src_link,omitempty"`
	Title   string         `json:"title"`
	ImgLink string         `json:"img_link"`
	Tags    []string       `json:"tags,omitempty"`
	Rate    *float64       `json:"rate,omitempty"`
	History []RecipeRecord `json:"-"`
	Score   float64        `json:"score"`
}

// MakeRecipeLite projects a stored recipe for ranking and search.
func MakeRecipeLite(r *Recipe) RecipeLite {
	id := r.ID.String()
	return RecipeLite{
		ID:      &id,
		Title:   r.Title,
		ImgLink: r.ImgLink,
		Tags:    r.Tags,
		History: r.History,
	}
}
