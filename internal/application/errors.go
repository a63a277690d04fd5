package application

import "errors"

// Service-level failure classes. Together with
// *imagestore.AttachmentError and imagestore.ErrNoExtension they form
// the whole variant set a caller has to branch on; the transport layer
// maps each one to its own status code and nothing in this package
// ever swallows them.
var (
	// ErrNotFound means the target record does not resolve. It wins
	// over ErrForbidden: removing or updating an absent id reports
	// not-found regardless of who asks.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden means the acting account is neither the record's
	// author nor an administrator. No partial write has happened when
	// it is returned.
	ErrForbidden = errors.New("not author or administrator")

	// ErrEmailTaken is returned by registration for a duplicate login
	// handle.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned by login when the account does
	// not exist or the password does not match. The two cases are
	// deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
