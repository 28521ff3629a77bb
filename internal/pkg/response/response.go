package response

import "github.com/gofiber/fiber/v2"

// ErrorBody is the envelope every failed request returns.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, errorLabel, message string) error {
	return c.Status(statusCode).JSON(ErrorBody{
		Error:   errorLabel,
		Message: message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, errorLabel, message string) error {
	return Error(c, fiber.StatusBadRequest, errorLabel, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, errorLabel, message string) error {
	return Error(c, fiber.StatusUnauthorized, errorLabel, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, errorLabel, message string) error {
	return Error(c, fiber.StatusNotFound, errorLabel, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, errorLabel, message string) error {
	return Error(c, fiber.StatusConflict, errorLabel, message)
}

// InternalServerError sends a 500 internal server error response.
// The message stays generic so store failures never leak internals.
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, "internal server error", message)
}
