package http

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/khoahotran/devconnect/pkg/apperror"
)

const locationBody = "body"

// bindJSON decodes the body into req and reports rule failures as an
// itemised validation error. The msg struct tag holds the text shown to the
// client. An empty body is validated as an empty object.
func bindJSON(c *gin.Context, req any) error {
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return toValidationError(req, vErrs)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperror.NewValidation(apperror.FieldError{
			Msg:      "Invalid value",
			Param:    typeErr.Field,
			Location: locationBody,
		})
	}
	return apperror.NewValidation(apperror.FieldError{
		Msg:      "Invalid JSON body",
		Location: locationBody,
	})
}

func toValidationError(req any, vErrs validator.ValidationErrors) *apperror.ValidationError {
	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	fields := make([]apperror.FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		param, msg := fe.Field(), fe.Error()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if name := strings.Split(sf.Tag.Get("json"), ",")[0]; name != "" {
				param = name
			}
			if m := sf.Tag.Get("msg"); m != "" {
				msg = m
			}
		}
		fields = append(fields, apperror.FieldError{
			Msg:      msg,
			Param:    param,
			Location: locationBody,
			Value:    fe.Value(),
		})
	}
	return apperror.NewValidation(fields...)
}
