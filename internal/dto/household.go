package dto

type JoinHouseholdRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

type AddShoppingItemRequest struct {
	Name     string   `json:"name"`
	Names    []string `json:"names"`
	RecipeID *string  `json:"recipe_id"`
}

type EditShoppingItemRequest struct {
	Name string `json:"name" validate:"required"`
}
