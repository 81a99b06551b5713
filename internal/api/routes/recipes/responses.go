package recipes

import (
	"github.com/matt-dz/recipehub/internal/collection"
	"github.com/matt-dz/recipehub/internal/recipe"
	"github.com/matt-dz/recipehub/internal/spoonacular"
)

type SubmitRecipeResponse struct {
	Recipe  recipe.Display `json:"recipe"`
	Warning string         `json:"warning,omitempty"`
}

type DeleteRecipeResponse struct {
	Recipes collection.Collection `json:"recipes"`
	Warning string                `json:"warning,omitempty"`
}

type SuggestResponse struct {
	Suggestions []spoonacular.Suggestion `json:"suggestions"`
}

type RecipesResponse struct {
	Recipes []recipe.Summary `json:"recipes"`
}

type SurpriseResponse struct {
	ID int64 `json:"id"`
}

type FormResponse struct {
	ID   int64       `json:"id"`
	Form recipe.Form `json:"form"`
}
