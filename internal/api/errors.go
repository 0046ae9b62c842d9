package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// All error responses share the {status, message} envelope. Validation
// failures add a field-keyed errors map.

func abortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"status":  status,
		"message": message,
	})
}

func abortForbidden(c *gin.Context, message string) {
	abortError(c, http.StatusForbidden, message)
}

// abortNotFound names the missing resource type in the message.
func abortNotFound(c *gin.Context, resource string) {
	abortError(c, http.StatusNotFound, fmt.Sprintf("This %s does not exist", resource))
}

func abortValidation(c *gin.Context, fieldErrors map[string][]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"status":  http.StatusBadRequest,
		"message": "Validation error",
		"errors":  fieldErrors,
	})
}

// abortInternal hides the underlying error unless debug mode is on.
func (h *Handler) abortInternal(c *gin.Context, err error) {
	body := gin.H{
		"status":  http.StatusInternalServerError,
		"message": "Internal server error",
	}
	if h.debug && err != nil {
		body["error"] = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}

// bindingErrors converts a gin binding failure into the field-keyed map of
// the validation envelope.
func bindingErrors(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{"body": {"The request body could not be parsed"}}
	}

	fieldErrors := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		fieldErrors[field] = append(fieldErrors[field], violationMessage(fe))
	}
	return fieldErrors
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		if fe.Tag() == "required" {
			return "Please enter an email address"
		}
		return "Please enter a valid email address"
	case "Fullname":
		return "Please enter the full name of the user"
	case "Password":
		if fe.Tag() == "required" {
			return "Please enter a password"
		}
		return fmt.Sprintf("Your password must be at least %s characters long", fe.Param())
	case "Username":
		return "Please enter a username"
	}
	return fmt.Sprintf("This value failed the %q rule", fe.Tag())
}

func emailTakenMessage(email string) string {
	return fmt.Sprintf("There is already an account with the email address '%s'.", email)
}
