// Package auth implements the origin-key bootstrap, user table, and
// per-connection login state of the server's auth provider.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// RootUser is the reserved id of the cluster-admin user.
const RootUser = "root"

const tokenBytes = 64

// user holds one entry of the auth table: an id and its hashed token.
type user struct {
	id        string
	hashedTok []byte
}

// Provider manages the origin key, the user table, and token generation.
// A Provider with an empty origin key is "disabled": every connection is
// treated as root-equivalent but CLAIM/ADDUSER/DELUSER/RESTORE refuse.
type Provider struct {
	mu        sync.RWMutex
	originKey string
	users     map[string]*user
	claimed   bool
}

// NewProvider constructs a Provider. An empty originKey disables auth.
func NewProvider(originKey string) *Provider {
	return &Provider{
		originKey: originKey,
		users:     make(map[string]*user),
	}
}

// Enabled reports whether an origin key was configured.
func (p *Provider) Enabled() bool {
	return p.originKey != ""
}

// generateToken returns a fresh 64-random-byte token, base64-encoded, and
// its bcrypt hash for storage.
func generateToken() (plain string, hashed []byte, err error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, err
	}
	plain = base64.StdEncoding.EncodeToString(buf)
	hashed, err = bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}
	return plain, hashed, nil
}

// checkOrigin compares the supplied origin key against the configured one
// in constant time.
func (p *Provider) checkOrigin(origin string) bool {
	if !p.Enabled() {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(origin), []byte(p.originKey)) == 1
}

// Claim creates the root user, returning its freshly generated token.
// Fails with ErrAlreadyClaimed once root exists, or ErrAuthDisabled /
// ErrBadOrigin if the origin key doesn't check out.
func (p *Provider) Claim(origin string) (string, error) {
	if !p.Enabled() {
		return "", ErrAuthDisabled
	}
	if !p.checkOrigin(origin) {
		return "", ErrBadOrigin
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.claimed {
		return "", ErrAlreadyClaimed
	}
	plain, hashed, err := generateToken()
	if err != nil {
		return "", err
	}
	p.users[RootUser] = &user{id: RootUser, hashedTok: hashed}
	p.claimed = true
	return plain, nil
}

// Login verifies a user id and token pair, returning nil on success.
func (p *Provider) Login(id, token string) error {
	p.mu.RLock()
	u, ok := p.users[id]
	p.mu.RUnlock()
	if !ok {
		return ErrUnknownUser
	}
	if bcrypt.CompareHashAndPassword(u.hashedTok, []byte(token)) != nil {
		return ErrBadCredentials
	}
	return nil
}

// AddUser creates a user with a freshly generated token, returning it.
// Only meaningful when called by root; callers enforce that policy.
func (p *Provider) AddUser(id string) (string, error) {
	if !p.Enabled() {
		return "", ErrAuthDisabled
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.users[id]; exists {
		return "", ErrUserExists
	}
	plain, hashed, err := generateToken()
	if err != nil {
		return "", err
	}
	p.users[id] = &user{id: id, hashedTok: hashed}
	return plain, nil
}

// DelUser removes a user. root can never be deleted.
func (p *Provider) DelUser(id string) error {
	if !p.Enabled() {
		return ErrAuthDisabled
	}
	if id == RootUser {
		return ErrCannotDeleteRoot
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.users[id]; !exists {
		return ErrUnknownUser
	}
	delete(p.users, id)
	return nil
}

// Restore regenerates a user's token. With an origin key it can target
// any user id (root bootstrap recovery); root-authenticated callers pass
// an empty origin and target any id directly — the caller enforces which
// form is permitted.
func (p *Provider) Restore(origin, id string) (string, error) {
	if !p.Enabled() {
		return "", ErrAuthDisabled
	}
	if origin != "" && !p.checkOrigin(origin) {
		return "", ErrBadOrigin
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	u, exists := p.users[id]
	if !exists {
		return "", ErrUnknownUser
	}
	plain, hashed, err := generateToken()
	if err != nil {
		return "", err
	}
	u.hashedTok = hashed
	return plain, nil
}

// ListUsers returns every registered user id.
func (p *Provider) ListUsers() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ids := make([]string, 0, len(p.users))
	for id := range p.users {
		ids = append(ids, id)
	}
	return ids
}

// UserExists reports whether id has an entry in the user table.
func (p *Provider) UserExists(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.users[id]
	return ok
}

// LoadUser installs a user id and its already-hashed token directly,
// bypassing token generation — used when restoring the auth table from
// a snapshot.
func (p *Provider) LoadUser(id string, hashedTok []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[id] = &user{id: id, hashedTok: hashedTok}
	if id == RootUser {
		p.claimed = true
	}
}

// Export returns a snapshot of the user table as id -> hashed token,
// suitable for serializing into the system/auth table payload.
func (p *Provider) Export() map[string][]byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string][]byte, len(p.users))
	for id, u := range p.users {
		out[id] = append([]byte(nil), u.hashedTok...)
	}
	return out
}
