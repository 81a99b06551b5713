package recipe

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidRecord       = errors.New("invalid recipe")
	ErrInvalidForm         = errors.New("invalid recipe form")
	ErrMalformedImage      = errors.New("malformed embedded image")
	ErrUnsupportedMimeType = errors.New("unsupported mime type")
)

var validate = validator.New(validator.WithRequiredStructEnabled())
