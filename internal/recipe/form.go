package recipe

import (
	"fmt"
	"strings"
)

// MaxServings is the largest servings value the authoring form offers.
// It is displayed as "7+".
const MaxServings = 8

// Form is the payload of the authoring form, possibly incomplete.
type Form struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Image        string   `json:"image"`
	CookingTime  int      `json:"cookingTime" validate:"omitempty,gt=0"`
	Servings     int      `json:"servings" validate:"omitempty,min=1,max=8"`
}

// IsEmpty reports whether the form holds nothing worth preserving.
func (f Form) IsEmpty() bool {
	if strings.TrimSpace(f.Title) != "" || strings.TrimSpace(f.Description) != "" {
		return false
	}
	return len(nonBlank(f.Ingredients)) == 0 && len(nonBlank(f.Instructions)) == 0
}

// Validate checks the form is ready for submission.
func (f Form) Validate() error {
	f.Title = strings.TrimSpace(f.Title)
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	return nil
}

// Record converts the form into a user-authored record with the given id.
// Blank ingredients and instruction lines are dropped; instructions are
// stored as newline separated free text.
func (f Form) Record(id int64) Record {
	return Record{
		ID:             id,
		Title:          strings.TrimSpace(f.Title),
		Description:    strings.TrimSpace(f.Description),
		Image:          strings.TrimSpace(f.Image),
		ReadyInMinutes: f.CookingTime,
		Servings:       f.Servings,
		Ingredients:    nonBlank(f.Ingredients),
		Instructions:   strings.Join(nonBlank(f.Instructions), "\n"),
		Source:         SourceUser,
	}
}

// FormFromRecord rebuilds the authoring form for editing r.
func FormFromRecord(r Record) Form {
	return Form{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  append([]string(nil), r.Ingredients...),
		Instructions: splitLines(r.Instructions),
		Image:        r.Image,
		CookingTime:  r.ReadyInMinutes,
		Servings:     r.Servings,
	}
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// splitLines splits free text on line breaks, dropping blank lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return nonBlank(strings.Split(text, "\n"))
}
