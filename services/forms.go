package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/appstore-backend/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report form field names rather than Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// ApplicationMetadata is the text part of the application upload form.
type ApplicationMetadata struct {
	CategoryID  uint   `form:"category_id" validate:"required"`
	DeveloperID uint   `form:"developer_id" validate:"required"`
	Version     string `form:"version" validate:"required,max=32"`
	Description string `form:"description" validate:"max=4000"`
	Permission  string `form:"permission" validate:"max=128"`
	OSVersion   string `form:"osVersion" validate:"max=32"`
	LaunchURL   string `form:"launchurl" validate:"omitempty,url"`
}

type CategoryInput struct {
	Name        string `form:"name" validate:"required,max=64"`
	Description string `form:"description" validate:"max=1000"`
}

type DeveloperInput struct {
	UserID uint   `form:"user_id" validate:"required"`
	Name   string `form:"name" validate:"required,max=64"`
}

// validateInput checks input against its validate tags and converts the
// first failure into an ApiErr naming the form field.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "required" {
			return errs.NewMissingRequiredFieldError(fe.Field())
		}
		return errs.NewInvalidFieldError(fe.Field(), strings.TrimSpace("must satisfy "+fe.Tag()+" "+fe.Param()))
	}
	return errs.NewMalformedPayloadError("form", err)
}
