package dto

import "time"

type AddMenuItemRequest struct {
	RecipeID *string        `json:"recipe_id"`
	Recipe   *RecipeRequest `json:"recipe"`
	Note     string         `json:"note"`
	Date     *time.Time     `json:"date"`
}

type UpdateMenuItemRequest struct {
	Note string     `json:"note"`
	Date *time.Time `json:"date"`
}

type FinishMenuItemRequest struct {
	RecipeID string   `json:"recipe_id" validate:"required"`
	Rating   *float64 `json:"rating" validate:"omitempty,min=1,max=5"`
}
