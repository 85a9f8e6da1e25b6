package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON binds and validates the request body. On failure it writes the
// error envelope and returns false; the handler just returns.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err == nil {
		return true
	}

	var validatorErrors validator.ValidationErrors

	if errors.As(err, &validatorErrors) {
		details := make([]string, 0, len(validatorErrors))
		missing := false

		for _, fieldError := range validatorErrors {
			name := jsonFieldName(out, fieldError.StructField())

			if fieldError.Tag() == "required" {
				missing = true
			}

			details = append(details, name+" "+validationMessage(fieldError.Tag(), fieldError.Param()))
		}

		errMsg := "Validation failed"
		if missing {
			errMsg = "Missing required fields"
		}

		RespondErrorDetail(ctx, http.StatusBadRequest, errMsg, strings.Join(details, "; "))
		return false
	}

	// bad JSON syntax, type mismatches, empty body
	RespondBadRequest(ctx, "Invalid request body")
	return false
}

// jsonFieldName maps a struct field back to its wire name. DTOs here are
// flat, so a single FieldByName lookup is enough.
func jsonFieldName(v interface{}, structField string) string {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return structField
	}

	sf, ok := t.FieldByName(structField)
	if !ok {
		return structField
	}

	tag := sf.Tag.Get("json")
	if tag == "" {
		return structField
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return structField
	}

	return name
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	default:
		if param != "" {
			return "failed " + rule + " validation (" + param + ")"
		}
		return "failed " + rule + " validation"
	}
}
