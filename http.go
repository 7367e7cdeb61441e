package roster

import (
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// DefaultContextKey is where the JWT middleware stores validated claims.
const DefaultContextKey = "claims"

// ClaimsFromFiber retrieves validated claims stored by the middleware.
func ClaimsFromFiber(c *fiber.Ctx, key string) (AuthClaims, bool) {
	claims, ok := c.Locals(key).(AuthClaims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

// parseUUIDParam reads a route param as a uuid, failing with a 400 class
// error on garbage ids.
func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, errors.New(
			fmt.Sprintf("%s is not a valid uuid", name),
			errors.CategoryBadInput,
		).WithCode(errors.CodeBadRequest)
	}
	return id, nil
}

// parseUUIDQuery reads an optional query filter as a uuid.
func parseUUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.New(
			fmt.Sprintf("%s is not a valid uuid", name),
			errors.CategoryBadInput,
		).WithCode(errors.CodeBadRequest)
	}

	return &id, nil
}

// StatusFromError maps errors to HTTP status codes. Rich errors map by
// category; repository not-found errors map to 404; anything else is a
// 500.
func StatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if repository.IsRecordNotFound(err) {
		return http.StatusNotFound
	}

	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return http.StatusInternalServerError
	}

	switch richErr.Category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	default:
		if richErr.Code >= http.StatusBadRequest {
			return richErr.Code
		}
		return http.StatusInternalServerError
	}
}

// RespondError writes the JSON error envelope: {"error": msg} with an
// optional text_code, or {"errors": {field: msg}} for validation maps.
func RespondError(c *fiber.Ctx, err error) error {
	status := StatusFromError(err)

	if fields := formatValidationErrors(err); len(fields) > 0 {
		return c.Status(status).JSON(fiber.Map{"errors": fields})
	}

	body := fiber.Map{"error": publicErrorMessage(err, status)}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode != "" {
		body["code"] = richErr.TextCode
	}

	return c.Status(status).JSON(body)
}

// formatValidationErrors flattens ozzo field errors into a string map.
func formatValidationErrors(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		if ferr != nil {
			fields[field] = ferr.Error()
		}
	}

	return fields
}

// publicErrorMessage keeps internal failure detail out of responses.
func publicErrorMessage(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return "an unexpected server error occurred"
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}

	if repository.IsRecordNotFound(err) {
		return "record not found"
	}

	return err.Error()
}
