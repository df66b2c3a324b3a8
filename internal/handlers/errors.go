package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const errInvalidPayload = "Invalid request payload"

// bindErrorDetails はバインド時のエラーを「フィールド: 理由」の形に整形します。
func bindErrorDetails(err error) string {
	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		messages := make([]string, 0, len(valErrs))
		for _, ve := range valErrs {
			messages = append(messages, jsonFieldName(ve)+": "+formatValidationError(ve))
		}
		return strings.Join(messages, "; ")
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "malformed JSON"
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s: must be %s", typeErr.Field, typeErr.Type)
	}
	return err.Error()
}

func jsonFieldName(ve validator.FieldError) string {
	f := ve.Field()
	if f == "" {
		return ve.StructField()
	}
	return strings.ToLower(f[:1]) + f[1:]
}

// formatValidationError は validator.FieldError を読みやすいメッセージに変換します。
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", ve.Param())
	case "hexcolor":
		return "must be a hex color"
	default:
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

func badRequest(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidPayload, "details": details})
}
