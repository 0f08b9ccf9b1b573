package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"taskmanager-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of a validation failure body.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
}

// Status maps an error to its HTTP status. Forbidden is reported as 404 so a
// caller cannot probe for other users' task ids.
func Status(err error) int {
	switch apperror.Kind(err) {
	case apperror.ErrValidation, apperror.ErrDuplicateEmail, apperror.ErrInvalidCredential,
		apperror.ErrUnsupportedMediaType:
		return http.StatusBadRequest
	case apperror.ErrNotFound, apperror.ErrForbidden:
		return http.StatusNotFound
	case apperror.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperror.ErrPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as {"msg", "param"} and aborts. Errors outside the
// taxonomy are logged and rendered as a generic 500.
func Error(c *gin.Context, log *slog.Logger, err error) {
	ErrorWithStatus(c, log, err, Status(err))
}

// ErrorWithStatus is Error with the status chosen by the caller, for routes
// whose contract differs from the default mapping.
func ErrorWithStatus(c *gin.Context, log *slog.Logger, err error, status int) {
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		log.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.AbortWithStatusJSON(status, gin.H{"msg": "Server error"})
		return
	}

	msg, param, ok := apperror.Details(err)
	if !ok || msg == "" {
		msg = defaultMessage(err)
	}

	body := gin.H{"msg": msg}
	if param != "" {
		body["param"] = param
	}
	c.AbortWithStatusJSON(status, body)
}

// BindError renders a gin binding failure. Validator errors are reported per
// field; anything else (malformed JSON, wrong types) becomes a single message.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Msg: fieldMessage(fe), Param: jsonName(fe)})
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"msg":    fields[0].Msg,
		"param":  fields[0].Param,
		"errors": fields,
	})
}

func defaultMessage(err error) string {
	switch apperror.Kind(err) {
	case apperror.ErrNotFound, apperror.ErrForbidden:
		return "Not found"
	case apperror.ErrUnauthorized:
		return "Token is not valid"
	case apperror.ErrDuplicateEmail:
		return "User already exists"
	case apperror.ErrUnsupportedMediaType:
		return "Only JPG, PNG and GIF images are allowed"
	case apperror.ErrPayloadTooLarge:
		return "File too large"
	default:
		return "Invalid request"
	}
}

func fieldMessage(fe validator.FieldError) string {
	name := jsonName(fe)
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return "Please include a valid email"
	case "min":
		if fe.Kind().String() == "string" {
			return name + " must be at least " + fe.Param() + " characters"
		}
		return name + " must be at least " + fe.Param()
	case "oneof":
		return name + " must be one of: " + fe.Param()
	default:
		return name + " is invalid"
	}
}

func jsonName(fe validator.FieldError) string {
	f := fe.Field()
	if f == "" {
		return ""
	}
	return strings.ToLower(f[:1]) + f[1:]
}
