// ABOUTME: Access gate guarding protected pages
// ABOUTME: Chooses between loading, login redirect, denied, and content

package gate

// Session is the slice of session state the gate needs
type Session interface {
	Loading() bool
	IsAuthenticated() bool
	IsAdmin() bool
}

// Decision is the single outcome of a gate check
type Decision int

const (
	// Allow renders the protected content
	Allow Decision = iota
	// ShowLoading renders a placeholder while the initial credential
	// verification is still in flight
	ShowLoading
	// RedirectLogin sends the user to the login page
	RedirectLogin
	// Denied renders the access-denied panel
	Denied
)

// Check evaluates the gate in fixed order: loading takes precedence over
// both other checks, and authentication takes precedence over admin.
func Check(s Session, requireAdmin bool) Decision {
	if s.Loading() {
		return ShowLoading
	}
	if !s.IsAuthenticated() {
		return RedirectLogin
	}
	if requireAdmin && !s.IsAdmin() {
		return Denied
	}
	return Allow
}
