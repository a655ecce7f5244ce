package auth

import (
	"errors"
	"fmt"
)

// Kind classifies credential resolution failures so that callers can branch
// on the failure class without matching message strings.
type Kind int

const (
	// KindMissingCredentials means no usable credential source was configured.
	KindMissingCredentials Kind = iota

	// KindBackendUnavailable means the secrets-manager integration could not
	// be initialized (for example, no usable AWS credential chain).
	KindBackendUnavailable

	// KindBackendAccess means the secret fetch call itself failed (network,
	// permission, or not-found).
	KindBackendAccess

	// KindInvalidSecretFormat means the fetched secret did not parse as JSON
	// or lacked the required client_id / client_secret fields.
	KindInvalidSecretFormat
)

// String returns a stable name for the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindMissingCredentials:
		return "missing-credentials"
	case KindBackendUnavailable:
		return "secrets-backend-unavailable"
	case KindBackendAccess:
		return "secrets-backend-access"
	case KindInvalidSecretFormat:
		return "invalid-secret-format"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by the resolver. Path carries the
// secret path when the failure happened on the secrets-manager route; it is
// safe to surface in messages. Secret values never appear in errors.
type Error struct {
	Kind    Kind
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *auth.Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
