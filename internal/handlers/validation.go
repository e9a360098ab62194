package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/lalitbiswal91/device-management/internal/models"
)

// messages holds the reason reported for a failed field, keyed by the
// struct namespace of the field.
var messages = map[string]string{
	"AddDevice.Name":     "Device name is mandatory and cannot be empty or null",
	"AddDevice.Brand":    "Device brand is mandatory and cannot be empty or null",
	"UpdateDevice.Name":  "Device name cannot be blank",
	"UpdateDevice.Brand": "Device brand cannot be blank",
}

var (
	registerOnce sync.Once
	registerErr  error
)

func registerValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("unexpected gin validator engine")
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		registerErr = v.RegisterValidation("notblank", validators.NotBlank)
	})
	return registerErr
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// bindError converts a request binding failure into the 400 response it maps to.
func bindError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return NewApiResponseError(http.StatusBadRequest, models.NewBadPayloadError())
	}
	body := models.ValidationErrors{}
	for _, fe := range validationErrors {
		message, found := messages[fe.StructNamespace()]
		if !found {
			message = fmt.Sprintf("failed on the '%s' validation", fe.Tag())
		}
		body[fe.Field()] = message
	}
	return NewApiResponseError(http.StatusBadRequest, body)
}
