// Package auth implements origin-key bootstrap, a user table of hashed
// tokens, and the per-connection login state that gates every action
// other than AUTH CLAIM/LOGIN/RESTORE/WHOAMI until a connection is
// logged in.
//
// Token generation and storage follow a TokenManager shape
// (crypto/rand generation, map keyed by id, guarded by a mutex): here
// tokens never expire, so there's no ExpiresAt/cleanup pass, and the
// stored form is a bcrypt hash of the generated token rather than the
// raw token itself.
package auth
