package dto

import "mealboard/internal/models"

type RecipeRequest struct {
	Title               string   `json:"title" validate:"required"`
	PermissionsRequired string   `json:"permissions_required"`
	Instructions        []string `json:"instructions"`
	ImgLink             string   `json:"img_link"`
	Servings            *string  `json:"servings"`
	TimeEstimate        []string `json:"time_estimate"`
	SrcLink             string   `json:"src_link"`
	SrcName             *string  `json:"src_name"`
	Ingredients         []string `json:"ingredients"`
	Tags                []string `json:"tags"`
}

func (r *RecipeRequest) ToModel() *models.Recipe {
	return &models.Recipe{
		Title:               r.Title,
		PermissionsRequired: r.PermissionsRequired,
		Instructions:        r.Instructions,
		ImgLink:             r.ImgLink,
		Servings:            r.Servings,
		TimeEstimate:        r.TimeEstimate,
		SrcLink:             r.SrcLink,
		SrcName:             r.SrcName,
		Ingredients:         r.Ingredients,
		Tags:                r.Tags,
	}
}

type RecipeResponse struct {
	ID                  string   `json:"id"`
	AuthorID            string   `json:"author_id"`
	Title               string   `json:"title"`
	PermissionsRequired string   `json:"permissions_required"`
	Instructions        []string `json:"instructions"`
	ImgLink             string   `json:"img_link"`
	Servings            *string  `json:"servings"`
	TimeEstimate        []string `json:"time_estimate"`
	SrcLink             string   `json:"src_link"`
	SrcName             *string  `json:"src_name"`
	Ingredients         []string `json:"ingredients"`
	Tags                []string `json:"tags"`
}

func MakeRecipeResponse(r *models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:                  r.ID.String(),
		AuthorID:            r.AuthorID.String(),
		Title:               r.Title,
		PermissionsRequired: r.PermissionsRequired,
		Instructions:        r.Instructions,
		ImgLink:             r.ImgLink,
		Servings:            r.Servings,
		TimeEstimate:        r.TimeEstimate,
		SrcLink:             r.SrcLink,
		SrcName:             r.SrcName,
		Ingredients:         r.Ingredients,
		Tags:                r.Tags,
	}
}

type FeedResponse struct {
	Recipes []models.RecipeLite `json:"recipes"`
}
