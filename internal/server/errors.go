package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/candidate-screener/internal/docext"
	"github.com/jonathan/candidate-screener/internal/fetch"
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/types"
)

// HTTPStatus maps pipeline errors to response status codes. Bad input
// is the caller's fault; unreadable documents are unprocessable;
// provider and download failures are upstream errors.
func HTTPStatus(err error) int {
	var validationErr *types.ValidationError
	var qualityErr *docext.InputQualityError
	var providerErr *llm.ProviderError
	var parseErr *llm.ParseError
	var fetchErr *fetch.Error

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &qualityErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &providerErr):
		return http.StatusBadGateway
	case errors.As(err, &parseErr):
		// Undecodable model output is an upstream failure too.
		return http.StatusBadGateway
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
