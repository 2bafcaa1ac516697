package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UserLite hides the recipe collection behind a count when listing
// household members.
type UserLite struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Recipes  string `json:"recipes"`
}

func MakeUserLite(u *User, recipeCount int) UserLite {
	return UserLite{
		ID:       u.ID.String(),
		Username: u.Username,
		Recipes:  fmt.Sprintf("%d recipes", recipeCount),
	}
}
