package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Catalog state errors
var (
	ErrCatalogInconsistency = errors.New("catalog inconsistency")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrNotImplemented       = errors.New("not implemented")
)

// NewCatalogInconsistencyError reports an application whose required
// related row (developer, assets) is missing.
func NewCatalogInconsistencyError(appUUID string, missing string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrCatalogInconsistency,
		Details:    fmt.Sprintf("application %s has no %s", appUUID, missing),
		Field:      missing,
	}
}

func NewInvalidTransitionError(appUUID string, from, to string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrInvalidTransition,
		Details:    fmt.Sprintf("application %s cannot move from %s to %s", appUUID, from, to),
		Field:      "application_status",
	}
}

func NewNotImplementedError(feature string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotImplemented,
		err:        ErrNotImplemented,
		Details:    feature,
	}
}

func IsCatalogInconsistencyError(err error) bool {
	return errors.Is(err, ErrCatalogInconsistency)
}

func IsInvalidTransitionError(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

func IsNotImplementedError(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}
