package models

// RecipeIngredientInput is one (ingredient id, amount) pair of a recipe
// write payload.
type RecipeIngredientInput struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required"`
}

// RecipeInput is the recipe create/update payload. Image is a base64
// data URI decoded server-side; it may be omitted on update to keep the
// stored blob.
type RecipeInput struct {
	Name        string                  `json:"name" binding:"required,max=200"`
	Text        string                  `json:"text" binding:"required"`
	CookingTime int                     `json:"cooking_time" binding:"required"`
	Image       string                  `json:"image"`
	Tags        []uint                  `json:"tags" binding:"required"`
	Ingredients []RecipeIngredientInput `json:"ingredients" binding:"required"`
}
