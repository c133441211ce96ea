package auth

import "errors"

var (
	// ErrAuthDisabled is returned when no origin key is configured and a
	// verb that requires it (CLAIM, ADDUSER, DELUSER, RESTORE) is used.
	ErrAuthDisabled = errors.New("auth: disabled (no origin key configured)")
	// ErrAlreadyClaimed is returned by Claim once the root user exists.
	ErrAlreadyClaimed = errors.New("auth: root already claimed")
	// ErrBadOrigin is returned when the supplied origin key doesn't match
	// the configured one.
	ErrBadOrigin = errors.New("auth: bad origin key")
	// ErrBadCredentials covers unknown user id or token mismatch.
	ErrBadCredentials = errors.New("auth: bad credentials")
	// ErrUnknownUser is returned when a user id has no entry.
	ErrUnknownUser = errors.New("auth: unknown user")
	// ErrUserExists is returned by AddUser for a duplicate id.
	ErrUserExists = errors.New("auth: user already exists")
	// ErrCannotDeleteRoot guards DelUser("root").
	ErrCannotDeleteRoot = errors.New("auth: cannot delete root")
	// ErrNotLoggedIn is returned when a connection-scoped operation needs
	// a bound user and none is set.
	ErrNotLoggedIn = errors.New("auth: not logged in")
)
