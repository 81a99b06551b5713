package collections

import (
	"github.com/matt-dz/recipehub/internal/collection"
)

type CollectionResponse struct {
	Name    collection.Name       `json:"name"`
	Recipes collection.Collection `json:"recipes"`
	// Warning is set when the change was applied but not persisted.
	Warning string `json:"warning,omitempty"`
}

func newCollectionResponse(name collection.Name, c collection.Collection, warning string) CollectionResponse {
	if c == nil {
		c = collection.Collection{}
	}
	return CollectionResponse{Name: name, Recipes: c, Warning: warning}
}
