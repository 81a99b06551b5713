package recipes

import (
	"strings"

	"github.com/matt-dz/recipehub/internal/spoonacular"
)

type SelectCategoryRequest struct {
	Category string `json:"category"`
}

const (
	maxRandomNumber   = 100
	maxIngredientList = 20
)

// parseIngredients splits a comma separated ingredient list, dropping
// blanks.
func parseIngredients(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func clampNumber(n int) int {
	if n <= 0 {
		return spoonacular.DefaultPageSize
	}
	return min(n, maxRandomNumber)
}
