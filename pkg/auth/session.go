package auth

// Session tracks the auth state bound to one connection: which user (if
// any) it is logged in as. A zero Session is pre-auth.
type Session struct {
	userID   string
	loggedIn bool
}

// LoggedIn reports whether the connection is bound to a user.
func (s *Session) LoggedIn() bool { return s.loggedIn }

// UserID returns the bound user id, or "" if not logged in.
func (s *Session) UserID() string { return s.userID }

// IsRoot reports whether the bound user is root.
func (s *Session) IsRoot() bool { return s.loggedIn && s.userID == RootUser }

// Bind marks the connection as logged in as id.
func (s *Session) Bind(id string) {
	s.userID = id
	s.loggedIn = true
}

// Logout clears the connection's login state.
func (s *Session) Logout() {
	s.userID = ""
	s.loggedIn = false
}

// preAuthAllowed is the set of AUTH subcommands usable before login.
var preAuthAllowed = map[string]bool{
	"CLAIM":   true,
	"LOGIN":   true,
	"RESTORE": true,
	"WHOAMI":  true,
}

// PreAuthAllowed reports whether the given AUTH subcommand (uppercased)
// may run on a connection that isn't yet logged in.
func PreAuthAllowed(subcommand string) bool {
	return preAuthAllowed[subcommand]
}

// EffectiveUser returns the user id a request should be attributed to:
// the bound user id when logged in, or root when auth is disabled
// entirely (every connection is root-equivalent), or "" otherwise.
func (s *Session) EffectiveUser(authEnabled bool) string {
	if s.loggedIn {
		return s.userID
	}
	if !authEnabled {
		return RootUser
	}
	return ""
}
