package database

import (
	"errors"

	"github.com/jerry-enebeli/runboard/internal/apierror"
	"github.com/lib/pq"
)

// mapError converts a driver error into an APIError, using fallback as the message of
// anything that is not a known constraint violation.
func mapError(err error, conflict, fallback string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return apierror.NewAPIError(apierror.ErrConflict, conflict, err)
		case "not_null_violation", "check_violation", "invalid_text_representation":
			return apierror.NewAPIError(apierror.ErrBadRequest, pqErr.Message, err)
		default:
			return apierror.NewAPIError(apierror.ErrInternalServer, "Database error occurred", err)
		}
	}
	return apierror.NewAPIError(apierror.ErrInternalServer, fallback, err)
}
