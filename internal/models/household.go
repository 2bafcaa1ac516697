package models

import (
	"time"

	"github.com/google/uuid"
)

type Household struct {
	ID                uuid.UUID  `db:"id"`
	OwnerID           uuid.UUID  `db:"owner_id"`
	JoinCode          *string    `db:"join_code"`
	JoinCodeExpiresAt *time.Time `db:"join_code_expires_at"`
	Members           []uuid.UUID
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// UserIDs returns the owner plus every member, owner first.
func (h *Household) UserIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(h.Members)+1)
	ids = append(ids, h.OwnerID)
	for _, m := range h.Members {
		if m != h.OwnerID {
			ids = append(ids, m)
		}
	}
	return ids
}

type MenuItem struct {
	HouseholdID uuid.UUID  `db:"household_id"`
	RecipeID    uuid.UUID  `db:"recipe_id"`
	Note        string     `db:"note"`
	Date        *time.Time `db:"date"`
	CreatedAt   time.Time  `db:"created_at"`
}

// MenuItemLite is a menu entry joined with enough recipe detail to render a
// menu card without loading the full recipe.
type MenuItemLite struct {
	Note     string     `json:"note"`
	Date     *time.Time `json:"date,omitempty"`
	RecipeID string     `json:"recipe_id"`
	ImgLink  string     `json:"img_link"`
	Title    string     `json:"title"`
}

type ShoppingItem struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	HouseholdID uuid.UUID  `db:"household_id" json:"household_id"`
	Name        string     `db:"name" json:"name"`
	Checked     bool       `db:"checked" json:"checked"`
	TimeChecked *time.Time `db:"time_checked" json:"time_checked,omitempty"`
	UserID      uuid.UUID  `db:"user_id" json:"user_id"`
	RecipeID    *uuid.UUID `db:"recipe_id" json:"recipe_id,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
