// Package docs holds the Swagger document of the recipehub API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/ping": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Ping"
                ],
                "summary": "Ping endpoint.",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ping.PingResponse"
                        }
                    }
                }
            }
        },
        "/api/collections/{name}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Collections"
                ],
                "summary": "Get a collection.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Collection name (favorites, likedRecipes, createdRecipes)",
                        "name": "name",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Tab id",
                        "name": "X-Tab-ID",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/collections.CollectionResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            }
        },
        "/api/collections/{name}/toggle": {
            "post": {
                "description": "Favorites and liked recipes toggle membership. Created recipes are changed through /api/recipes.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Collections"
                ],
                "summary": "Add or remove a recipe.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Collection name (favorites, likedRecipes, createdRecipes)",
                        "name": "name",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Tab id",
                        "name": "X-Tab-ID",
                        "in": "header"
                    },
                    {
                        "description": "Recipe to toggle",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/recipe.Record"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/collections.CollectionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            }
        },
        "/api/collections/{name}/{id}": {
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Collections"
                ],
                "summary": "Remove a recipe.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Collection name (favorites, likedRecipes, createdRecipes)",
                        "name": "name",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Recipe id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Tab id",
                        "name": "X-Tab-ID",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/collections.CollectionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            }
        },
        "/api/recipes": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recipes"
                ],
                "summary": "Submit a recipe.",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Id of the created recipe to replace",
                        "name": "id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Tab id",
                        "name": "X-Tab-ID",
                        "in": "header"
                    },
                    {
                        "description": "Recipe form",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/recipe.Form"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/recipes.SubmitRecipeResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            }
        },
        "/api/recipes/random": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recipes"
                ],
                "summary": "Random recipes.",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Batch size; leaves the tab's feed untouched",
                        "name": "number",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Tab id",
                        "name": "X-Tab-ID",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/feed.State"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "429": {
                        "description": "Quota Exceeded",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "502": {
                        "description": "Upstream Failed",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            }
        },
        "/api/recipes/search": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recipes"
                ],
                "summary": "Search recipes.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Query",
                        "name": "q",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Category; the tab's category when absent",
                        "name": "category",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Result offset",
                        "name": "offset",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Tab id",
                        "name": "X-Tab-ID",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/feed.State"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "429": {
                        "description": "Quota Exceeded",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "502": {
                        "description": "Upstream Failed",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            }
        },
        "/api/recipes/suggest": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recipes"
                ],
                "summary": "Suggest recipe titles.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Title prefix",
                        "name": "q",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/recipes.SuggestResponse"
                        }
                    },
                    "429": {
                        "description": "Quota Exceeded",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "502": {
                        "description": "Upstream Failed",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            }
        },
        "/api/recipes/by-ingredients": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recipes"
                ],
                "summary": "Recipes using ingredients.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma separated ingredients",
                        "name": "i",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/recipes.RecipesResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "429": {
                        "description": "Quota Exceeded",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "502": {
                        "description": "Upstream Failed",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            }
        },
        "/api/recipes/surprise": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recipes"
                ],
                "summary": "Pick a random recipe.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tab id",
                        "name": "X-Tab-ID",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/recipes.SurpriseResponse"
                        }
                    },
                    "429": {
                        "description": "Quota Exceeded",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "502": {
                        "description": "Upstream Failed",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            }
        },
        "/api/recipes/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recipes"
                ],
                "summary": "Get a recipe.",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Recipe id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Tab id",
                        "name": "X-Tab-ID",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/detail.Result"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "429": {
                        "description": "Quota Exceeded",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "502": {
                        "description": "Upstream Failed",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recipes"
                ],
                "summary": "Delete a created recipe.",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Recipe id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Tab id",
                        "name": "X-Tab-ID",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/recipes.DeleteRecipeResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            }
        },
        "/api/recipes/{id}/form": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recipes"
                ],
                "summary": "Get the edit form of a created recipe.",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Recipe id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/recipes.FormResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            }
        },
        "/api/feed": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Feed"
                ],
                "summary": "Get the tab's feed.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tab id",
                        "name": "X-Tab-ID",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/feed.State"
                        }
                    }
                }
            }
        },
        "/api/feed/category": {
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Feed"
                ],
                "summary": "Select the tab's category.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tab id",
                        "name": "X-Tab-ID",
                        "in": "header"
                    },
                    {
                        "description": "Category",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/recipes.SelectCategoryRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/feed.State"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "429": {
                        "description": "Quota Exceeded",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "502": {
                        "description": "Upstream Failed",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            }
        },
        "/api/draft": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Draft"
                ],
                "summary": "Get the saved draft.",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/draft.DraftResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            },
            "put": {
                "description": "An empty form clears the draft.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Draft"
                ],
                "summary": "Save the draft.",
                "parameters": [
                    {
                        "description": "Form in progress",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/recipe.Form"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/draft.SaveDraftResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Draft"
                ],
                "summary": "Discard the draft.",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            }
        },
        "/api/events": {
            "get": {
                "produces": [
                    "text/event-stream"
                ],
                "tags": [
                    "Events"
                ],
                "summary": "Stream collection changes.",
                "description": "Sends a collection event for every collection, then one whenever another tab of the profile changes a collection.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tab id",
                        "name": "tab",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/apiError.Error"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "apiError.Error": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "error_id": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ping.PingResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                }
            }
        },
        "recipe.Ingredient": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "number"
                },
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "original": {
                    "type": "string"
                },
                "unit": {
                    "type": "string"
                }
            }
        },
        "recipe.Step": {
            "type": "object",
            "properties": {
                "number": {
                    "type": "integer"
                },
                "step": {
                    "type": "string"
                }
            }
        },
        "recipe.Record": {
            "type": "object",
            "properties": {
                "description": {
                    "type": "string"
                },
                "dishTypes": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "extendedIngredients": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/recipe.Ingredient"
                    }
                },
                "id": {
                    "type": "integer"
                },
                "image": {
                    "type": "string"
                },
                "ingredients": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "instructions": {
                    "type": "string"
                },
                "readyInMinutes": {
                    "type": "integer"
                },
                "servings": {
                    "type": "integer"
                },
                "source": {
                    "type": "string",
                    "enum": [
                        "user",
                        "external"
                    ]
                },
                "steps": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/recipe.Step"
                    }
                },
                "title": {
                    "type": "string"
                }
            },
            "required": [
                "title"
            ]
        },
        "recipe.Form": {
            "type": "object",
            "properties": {
                "cookingTime": {
                    "type": "integer"
                },
                "description": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "ingredients": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "instructions": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "servings": {
                    "type": "integer",
                    "maximum": 8,
                    "minimum": 1
                },
                "title": {
                    "type": "string"
                }
            },
            "required": [
                "title"
            ]
        },
        "recipe.Display": {
            "type": "object",
            "properties": {
                "description": {
                    "type": "string"
                },
                "dishTypes": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "id": {
                    "type": "integer"
                },
                "image": {
                    "type": "string"
                },
                "ingredients": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/recipe.Ingredient"
                    }
                },
                "readyIn": {
                    "type": "string"
                },
                "servings": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                },
                "steps": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/recipe.Step"
                    }
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "recipe.Summary": {
            "type": "object",
            "properties": {
                "dishType": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "image": {
                    "type": "string"
                },
                "readyIn": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "collections.CollectionResponse": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "recipes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/recipe.Record"
                    }
                },
                "warning": {
                    "type": "string",
                    "description": "Set when the change was applied but not persisted."
                }
            }
        },
        "feed.State": {
            "type": "object",
            "properties": {
                "category": {
                    "type": "string",
                    "enum": [
                        "All",
                        "Breakfast",
                        "Lunch",
                        "Dinner",
                        "Desserts",
                        "Snacks"
                    ]
                },
                "error": {
                    "type": "string"
                },
                "loading": {
                    "type": "boolean"
                },
                "offset": {
                    "type": "integer"
                },
                "query": {
                    "type": "string"
                },
                "recipes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/recipe.Summary"
                    }
                },
                "totalResults": {
                    "type": "integer"
                }
            }
        },
        "detail.Result": {
            "type": "object",
            "properties": {
                "created": {
                    "type": "boolean"
                },
                "favorite": {
                    "type": "boolean"
                },
                "liked": {
                    "type": "boolean"
                },
                "recipe": {
                    "$ref": "#/definitions/recipe.Display"
                }
            }
        },
        "recipes.SubmitRecipeResponse": {
            "type": "object",
            "properties": {
                "recipe": {
                    "$ref": "#/definitions/recipe.Display"
                },
                "warning": {
                    "type": "string"
                }
            }
        },
        "recipes.DeleteRecipeResponse": {
            "type": "object",
            "properties": {
                "recipes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/recipe.Record"
                    }
                },
                "warning": {
                    "type": "string"
                }
            }
        },
        "recipes.SuggestResponse": {
            "type": "object",
            "properties": {
                "suggestions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/spoonacular.Suggestion"
                    }
                }
            }
        },
        "spoonacular.Suggestion": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "recipes.RecipesResponse": {
            "type": "object",
            "properties": {
                "recipes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/recipe.Summary"
                    }
                }
            }
        },
        "recipes.SurpriseResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                }
            }
        },
        "recipes.FormResponse": {
            "type": "object",
            "properties": {
                "form": {
                    "$ref": "#/definitions/recipe.Form"
                },
                "id": {
                    "type": "integer"
                }
            }
        },
        "recipes.SelectCategoryRequest": {
            "type": "object",
            "properties": {
                "category": {
                    "type": "string"
                }
            }
        },
        "draft.DraftResponse": {
            "type": "object",
            "properties": {
                "form": {
                    "$ref": "#/definitions/recipe.Form"
                }
            }
        },
        "draft.SaveDraftResponse": {
            "type": "object",
            "properties": {
                "saved": {
                    "type": "boolean"
                },
                "warning": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Recipehub API",
	Description:      "API Server for the Recipehub application.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
