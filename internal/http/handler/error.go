package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"custodia/internal/http/middleware"
	"custodia/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_TYPE", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// validation -> 400, conflict -> 409, not found -> 404, anything else -> 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrCPFRequired):
		return writeError(c, fiber.StatusBadRequest, "CPF_REQUIRED", "cpf is required")
	case errors.Is(err, service.ErrInvalidCPF):
		return writeError(c, fiber.StatusBadRequest, "INVALID_CPF", "malformed cpf")
	case errors.Is(err, service.ErrInvalidType):
		return writeError(c, fiber.StatusBadRequest, "INVALID_TYPE", "invalid document type")
	case errors.Is(err, service.ErrInvalidFormat):
		return writeError(c, fiber.StatusBadRequest, "INVALID_FORMAT", "only PDF files are accepted")
	case errors.Is(err, service.ErrPersonExists):
		return writeError(c, fiber.StatusConflict, "PERSON_EXISTS", "person already exists")
	case errors.Is(err, service.ErrPersonNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "person not found")
	case errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
