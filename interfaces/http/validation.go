package http

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"ig-dashboard/domain/dto"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerOnce sync.Once

var fieldLabels = map[string]string{
	"media_id":   "Media ID",
	"comment_id": "Comment ID",
	"message":    "Message",
}

// RegisterValidators teaches gin's validator the custom tags used by the
// request DTOs and makes field errors report JSON names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// validationResponse turns a binding failure into the 400 body. override,
// when given, replaces the per-field message.
func validationResponse(err error, override ...string) dto.ErrorResponse {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return dto.ErrorResponse{Message: "Invalid request body", Error: err.Error()}
	}
	fe := fieldErrs[0]
	res := dto.ErrorResponse{Field: fe.Field(), Message: fieldMessage(fe)}
	if len(override) > 0 {
		res.Message = override[0]
	}
	return res
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "notblank":
		return label + " must not be blank"
	default:
		return label + " is invalid"
	}
}
