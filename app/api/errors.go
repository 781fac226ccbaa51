package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/rockyxcoded/Example-PDF-vector-search/types"
)

// ErrorHandler maps pipeline and API errors onto HTTP responses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if apiErr, ok := err.(Error); ok {
		return c.Status(apiErr.Code).JSON(apiErr)
	}
	if valErr, ok := err.(ValidationError); ok {
		return c.Status(valErr.Status).JSON(valErr)
	}

	var (
		extractionErr *types.ExtractionError
		providerErr   *types.ProviderError
		storeErr      *types.StoreError
		fiberErr      *fiber.Error
	)

	apiErr := NewError(fiber.StatusInternalServerError, err.Error())
	switch {
	case errors.Is(err, types.ErrNotFound):
		apiErr.Code = fiber.StatusNotFound
	case errors.Is(err, types.ErrEmptyDocument):
		apiErr.Code = fiber.StatusUnprocessableEntity
	case errors.As(err, &extractionErr):
		apiErr.Code = fiber.StatusBadRequest
	case errors.As(err, &providerErr):
		apiErr.Code = fiber.StatusBadGateway
	case errors.As(err, &storeErr):
		apiErr.Code = fiber.StatusInternalServerError
	case errors.As(err, &fiberErr):
		apiErr.Code = fiberErr.Code
	}

	slog.Error("request failed", "status", apiErr.Code, "error", apiErr.Message)
	return c.Status(apiErr.Code).JSON(apiErr)
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e Error) Error() string {
	return e.Message
}

func NewError(code int, err string) Error {
	return Error{
		Code:    code,
		Message: err,
	}
}

func ErrBadRequest() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid request",
	}
}

type ValidationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(errors map[string]string) ValidationError {
	return ValidationError{
		Status: fiber.StatusUnprocessableEntity,
		Errors: errors,
	}
}
