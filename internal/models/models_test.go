package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHouseholdUserIDs(t *testing.T) {
	owner := uuid.New()
	member := uuid.New()
	h := &Household{
		OwnerID: owner,
		Members: []uuid.UUID{member, owner},
	}

	ids := h.UserIDs()

	// Owner first, no duplicate even when listed as a member.
	require.Len(t, ids, 2)
	assert.Equal(t, owner, ids[0])
	assert.Equal(t, member, ids[1])
}

func TestMakeRecipeLite(t *testing.T) {
	recipe := &Recipe{
		ID:      uuid.New(),
		Title:   "Shakshuka",
		ImgLink: "https://img.test/shakshuka.jpg",
		Tags:    []string{"breakfast"},
		History: []RecipeRecord{{RecipeID: uuid.New()}},
	}

	lite := MakeRecipeLite(recipe)

	require.NotNil(t, lite.ID)
	assert.Equal(t, recipe.ID.String(), *lite.ID)
	assert.Nil(t, lite.SrcLink)
	assert.Equal(t, "Shakshuka", lite.Title)
	assert.Equal(t, recipe.Tags, lite.Tags)
	assert.Len(t, lite.History, 1)
	assert.Zero(t, lite.Score)
}

func TestMakeUserLite(t *testing.T) {
	u := &User{ID: uuid.New(), Username: "alice"}

	lite := MakeUserLite(u, 3)

	assert.Equal(t, u.ID.String(), lite.ID)
	assert.Equal(t, "alice", lite.Username)
	assert.Equal(t, "3 recipes", lite.Recipes)
}
