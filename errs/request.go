package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Request & Input-Validation Errors
var (
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrMaxBodySizeExceeded  = errors.New("max body size exceeded")
	ErrNoFileSelected       = errors.New("no file selected")
	ErrExtensionNotAllowed  = errors.New("file extension not allowed")
	ErrUnsafeFilename       = errors.New("unsafe file name")
)

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMalformedPayload,
		Details:    fmt.Sprintf("Malformed %s payload", payloadType),
		Cause:      cause,
		Field:      "payload",
	}
}

func NewMissingRequiredFieldError(fieldName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMissingRequiredField,
		Details:    fmt.Sprintf("Missing required field: %s", fieldName),
		Field:      fieldName,
	}
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidField,
		Details:    fmt.Sprintf("Invalid field %s: %s", fieldName, reason),
		Field:      fieldName,
	}
}

func NewMaxBodySizeExceededError(maxSize int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusRequestEntityTooLarge,
		err:        ErrMaxBodySizeExceeded,
		Details:    fmt.Sprintf("Request body size exceeded maximum allowed size of %d bytes", maxSize),
		Field:      "body_size",
	}
}

func NewNoFileSelectedError(fieldName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrNoFileSelected,
		Field:      fieldName,
	}
}

func NewExtensionNotAllowedError(fieldName, filename string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrExtensionNotAllowed,
		Details:    filename,
		Field:      fieldName,
	}
}

func NewUnsafeFilenameError(fieldName, filename string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrUnsafeFilename,
		Details:    filename,
		Field:      fieldName,
	}
}

func IsMalformedPayloadError(err error) bool {
	return errors.Is(err, ErrMalformedPayload)
}

func IsMissingRequiredFieldError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

func IsInvalidFieldError(err error) bool {
	return errors.Is(err, ErrInvalidField)
}

func IsNoFileSelectedError(err error) bool {
	return errors.Is(err, ErrNoFileSelected)
}

func IsExtensionNotAllowedError(err error) bool {
	return errors.Is(err, ErrExtensionNotAllowed)
}

func IsUnsafeFilenameError(err error) bool {
	return errors.Is(err, ErrUnsafeFilename)
}

// IsValidationError reports whether err is a user input problem that should
// be shown back to the user rather than logged as a failure.
func IsValidationError(err error) bool {
	return IsMalformedPayloadError(err) ||
		IsMissingRequiredFieldError(err) ||
		IsInvalidFieldError(err) ||
		IsNoFileSelectedError(err) ||
		IsExtensionNotAllowedError(err) ||
		IsUnsafeFilenameError(err) ||
		errors.Is(err, ErrMaxBodySizeExceeded)
}
