package usecase

import (
	"errors"

	"rental-hunter/internal/pkg/errs"
)

func IsNotFound(err error) bool {
	return errors.Is(err, errs.ErrListingNotFound) ||
		errors.Is(err, errs.ErrTargetNotFound) ||
		errors.Is(err, errs.ErrUnknownCorrelation)
}
