package error

import "net/http"

type ErrorCode string

const (
	UnknownError        ErrorCode = "unknown_error"
	InternalServerError ErrorCode = "internal_server_error"
	BadRequest          ErrorCode = "bad_request"
	UnprocessibleEntity ErrorCode = "unprocessible_entity"
	RecipeNotFound      ErrorCode = "recipe_not_found"
	UnknownCollection   ErrorCode = "unknown_collection"
	QuotaExceeded       ErrorCode = "quota_exceeded"
	UpstreamFailed      ErrorCode = "upstream_failed"
	InvalidProfile      ErrorCode = "invalid_profile"
)

var errorCodeToStatusCode = map[ErrorCode]int{
	UnknownError:        0, // No error code - unknown
	InternalServerError: http.StatusInternalServerError,
	BadRequest:          http.StatusBadRequest,
	UnprocessibleEntity: http.StatusUnprocessableEntity,
	RecipeNotFound:      http.StatusNotFound,
	UnknownCollection:   http.StatusNotFound,
	QuotaExceeded:       http.StatusTooManyRequests,
	UpstreamFailed:      http.StatusBadGateway,
	InvalidProfile:      http.StatusUnauthorized,
}

func (ec ErrorCode) StatusCode() int {
	return errorCodeToStatusCode[ec]
}

func (ec ErrorCode) String() string {
	return string(ec)
}
