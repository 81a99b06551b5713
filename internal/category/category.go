// Package category narrows external search results to the categories
// offered by the home view.
package category

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matt-dz/recipehub/internal/recipe"
)

type Category string

const (
	All       Category = "All"
	Breakfast Category = "Breakfast"
	Lunch     Category = "Lunch"
	Dinner    Category = "Dinner"
	Desserts  Category = "Desserts"
	Snacks    Category = "Snacks"
)

// Categories lists every category in display order.
var Categories = []Category{All, Breakfast, Lunch, Dinner, Desserts, Snacks}

var ErrUnknownCategory = errors.New("unknown category")

// tags maps a category to the lower-cased dish types it accepts.
var tags = map[Category]map[string]struct{}{
	Breakfast: set("breakfast", "brunch", "morning meal"),
	Lunch:     set("lunch", "main course", "main dish", "salad", "soup", "sandwich"),
	Dinner:    set("dinner", "main course", "main dish"),
	Desserts:  set("dessert"),
	Snacks:    set("snack", "appetizer", "fingerfood", "antipasti", "starter"),
}

// apiTypes holds the coarser "type" parameter of the recipe API.
var apiTypes = map[Category]string{
	Breakfast: "breakfast",
	Lunch:     "main course",
	Dinner:    "main course",
	Desserts:  "dessert",
	Snacks:    "snack",
}

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

// Parse matches s against the category names, ignoring case. An empty
// string is All.
func Parse(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return All, nil
	}
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Tags returns the dish types c accepts. All has none.
func (c Category) Tags() []string {
	out := make([]string, 0, len(tags[c]))
	for tag := range tags[c] {
		out = append(out, tag)
	}
	return out
}

// APIType returns the recipe API's type parameter for c, or "" for All.
func (c Category) APIType() string {
	return apiTypes[c]
}

// Matches reports whether any of r's dish types belongs to c.
func (c Category) Matches(r recipe.Record) bool {
	accepted := tags[c]
	for _, dishType := range r.DishTypes {
		if _, ok := accepted[strings.ToLower(strings.TrimSpace(dishType))]; ok {
			return true
		}
	}
	return false
}

// Filter keeps the records of batch matching c, in order. All returns
// batch unchanged; the caller is expected to fetch an unfiltered batch
// instead.
func Filter(c Category, batch []recipe.Record) []recipe.Record {
	if c == All {
		return batch
	}
	out := make([]recipe.Record, 0, len(batch))
	for _, r := range batch {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
