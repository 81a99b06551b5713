package recipe

import "strconv"

// NotAvailable is displayed in place of absent numeric fields.
const NotAvailable = "–"

// Display is the single shape the detail view renders, whatever the
// record's source.
type Display struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Image       string       `json:"image"`
	ReadyIn     string       `json:"readyIn"`
	Servings    string       `json:"servings"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	DishTypes   []string     `json:"dishTypes"`
	Source      Source       `json:"source"`
}

// Summary is the card shape used in recipe grids and lists.
type Summary struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	ReadyIn  string `json:"readyIn"`
	DishType string `json:"dishType,omitempty"`
}

// Normalize converts r into its display form.
func Normalize(r Record) Display {
	d := Display{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Image:       ResolveImage(r.Image),
		ReadyIn:     readyInLabel(r.ReadyInMinutes),
		DishTypes:   append([]string{}, r.DishTypes...),
	}

	if r.IsUserAuthored() {
		d.Source = SourceUser
		d.Servings = servingsLabel(r.Servings, true)
		d.Ingredients = wrapIngredients(r.Ingredients)
		d.Steps = numberSteps(r.Instructions)
		return d
	}

	d.Source = SourceExternal
	d.Servings = servingsLabel(r.Servings, false)
	d.Ingredients = append([]Ingredient{}, r.ExtendedIngredients...)
	d.Steps = append([]Step{}, r.Steps...)
	return d
}

// Summarize converts r into its card form.
func Summarize(r Record) Summary {
	s := Summary{
		ID:      r.ID,
		Title:   r.Title,
		Image:   ResolveImage(r.Image),
		ReadyIn: readyInLabel(r.ReadyInMinutes),
	}
	if len(r.DishTypes) > 0 {
		s.DishType = r.DishTypes[0]
	}
	return s
}

func wrapIngredients(values []string) []Ingredient {
	lines := nonBlank(values)
	out := make([]Ingredient, 0, len(lines))
	for _, line := range lines {
		out = append(out, Ingredient{Original: line})
	}
	return out
}

func numberSteps(instructions string) []Step {
	lines := splitLines(instructions)
	out := make([]Step, 0, len(lines))
	for i, line := range lines {
		out = append(out, Step{Number: i + 1, Step: line})
	}
	return out
}

func readyInLabel(minutes int) string {
	if minutes <= 0 {
		return NotAvailable
	}
	return strconv.Itoa(minutes) + " mins"
}

func servingsLabel(servings int, authored bool) string {
	switch {
	case servings <= 0:
		return NotAvailable
	case authored && servings >= MaxServings:
		return strconv.Itoa(MaxServings-1) + "+"
	}
	return strconv.Itoa(servings)
}
