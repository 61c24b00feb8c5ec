package service

import (
	"errors"

	"commercial-paper-verifier/internal/core/domain"
	"commercial-paper-verifier/pkg/apperror"
)

// FromDomain maps a structured verification error onto its API error.
// The domain message and rule id are kept so clients see which rule broke.
// Errors that are not *domain.Error become SYS_001.
func FromDomain(err error) *apperror.AppError {
	var de *domain.Error
	if !errors.As(err, &de) {
		return apperror.InternalError(err)
	}

	var appErr *apperror.AppError
	switch de.Kind {
	case domain.KindInvalidValue:
		appErr = apperror.ErrInvalidValue(err)
	case domain.KindCurrencyMismatch:
		appErr = apperror.ErrCurrencyMismatch(err)
	case domain.KindMalformedTransaction:
		appErr = apperror.ErrMalformedTransaction(err)
	case domain.KindContractViolation:
		appErr = apperror.ErrContractViolation(err)
	case domain.KindMissingSignature:
		appErr = apperror.ErrMissingSignature(err)
	default:
		return apperror.InternalError(err)
	}
	appErr.Message = de.Message
	appErr.Rule = de.Rule
	return appErr
}

// CodeFor returns the API error code for a verification error, or "" for nil.
func CodeFor(err error) string {
	if err == nil {
		return ""
	}
	return FromDomain(err).Code
}
