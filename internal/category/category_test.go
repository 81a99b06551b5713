package category

import (
	"errors"
	"slices"
	"testing"

	"github.com/matt-dz/recipehub/internal/recipe"
)

func batch() []recipe.Record {
	return []recipe.Record{
		{ID: 1, Title: "Omelette", DishTypes: []string{"Breakfast", "brunch"}},
		{ID: 2, Title: "Brownies", DishTypes: []string{"dessert"}},
		{ID: 3, Title: "Granola", DishTypes: []string{"MORNING MEAL", "snack"}},
		{ID: 4, Title: "Mystery"},
		{ID: 5, Title: "Lasagna", DishTypes: []string{"main course", "dinner"}},
		{ID: 6, Title: "Nachos", DishTypes: []string{"fingerfood"}},
	}
}

func ids(records []recipe.Record) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		category Category
		want     []int64
	}{
		{category: Breakfast, want: []int64{1, 3}},
		{category: Desserts, want: []int64{2}},
		{category: Dinner, want: []int64{5}},
		{category: Lunch, want: []int64{5}},
		{category: Snacks, want: []int64{3, 6}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := ids(Filter(tt.category, batch()))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter(%s) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestFilter_AllBypasses(t *testing.T) {
	in := batch()
	got := Filter(All, in)
	if !slices.Equal(ids(got), ids(in)) {
		t.Errorf("Filter(All) = %v, want the full batch", ids(got))
	}
	// bypass returns the batch itself rather than a filtered copy
	if &got[0] != &in[0] {
		t.Error("Filter(All) copied the batch")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{in: "", want: All},
		{in: "all", want: All},
		{in: "BREAKFAST", want: Breakfast},
		{in: " desserts ", want: Desserts},
		{in: "brunch", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownCategory) {
				t.Errorf("Parse(%q) error = %v, want ErrUnknownCategory", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Parse(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestAPIType(t *testing.T) {
	if got := All.APIType(); got != "" {
		t.Errorf("All.APIType() = %q, want empty", got)
	}
	if got := Desserts.APIType(); got != "dessert" {
		t.Errorf("Desserts.APIType() = %q, want dessert", got)
	}
}

func TestTags(t *testing.T) {
	got := Breakfast.Tags()
	slices.Sort(got)
	want := []string{"breakfast", "brunch", "morning meal"}
	if !slices.Equal(got, want) {
		t.Errorf("Breakfast.Tags() = %v, want %v", got, want)
	}
}
