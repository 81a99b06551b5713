// Package recipe contains the canonical recipe model shared by the
// collections, the authoring form and the external API client.
package recipe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Source tells which fields of a Record are authoritative.
type Source string

const (
	SourceUser     Source = "user"
	SourceExternal Source = "external"
)

// Ingredient is the rich ingredient shape used for display.
type Ingredient struct {
	ID       int64   `json:"id,omitempty"`
	Name     string  `json:"name,omitempty"`
	Original string  `json:"original"`
	Amount   float64 `json:"amount,omitempty"`
	Unit     string  `json:"unit,omitempty"`
}

// Step is one numbered instruction.
type Step struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

func (s Step) String() string {
	return fmt.Sprintf("%d: %s", s.Number, s.Step)
}

// Record is a recipe as stored in a collection.
//
// User-authored records carry Ingredients and free-text Instructions.
// External records carry ExtendedIngredients and Steps.
type Record struct {
	ID                  int64        `json:"id"`
	Title               string       `json:"title" validate:"required"`
	Description         string       `json:"description,omitempty"`
	Image               string       `json:"image,omitempty"`
	ReadyInMinutes      int          `json:"readyInMinutes,omitempty" validate:"gte=0"`
	Servings            int          `json:"servings,omitempty" validate:"gte=0"`
	Ingredients         []string     `json:"ingredients,omitempty"`
	Instructions        string       `json:"instructions,omitempty"`
	ExtendedIngredients []Ingredient `json:"extendedIngredients,omitempty"`
	Steps               []Step       `json:"steps,omitempty"`
	DishTypes           []string     `json:"dishTypes,omitempty"`
	Source              Source       `json:"source,omitempty" validate:"omitempty,oneof=user external"`
}

// UnmarshalJSON accepts the legacy "cookingTime" key of user-authored
// records and folds it into ReadyInMinutes.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	aux := struct {
		*plain
		CookingTime int `json:"cookingTime"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.ReadyInMinutes == 0 && aux.CookingTime > 0 {
		r.ReadyInMinutes = aux.CookingTime
	}
	return nil
}

// IsUserAuthored reports whether r was written by the user. Records
// persisted without a source tag are classified by their fields.
func (r Record) IsUserAuthored() bool {
	switch r.Source {
	case SourceUser:
		return true
	case SourceExternal:
		return false
	}
	return len(r.ExtendedIngredients) == 0 && len(r.Steps) == 0 &&
		(len(r.Ingredients) > 0 || r.Instructions != "")
}

// Validate checks the invariants every collection member must hold.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is blank", ErrInvalidRecord)
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}
