// ABOUTME: Tests for the access gate decision order
// ABOUTME: Loading beats authentication beats the admin check

package gate

import "testing"

type fakeSession struct {
	loading       bool
	authenticated bool
	admin         bool
}

func (f fakeSession) Loading() bool         { return f.loading }
func (f fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f fakeSession) IsAdmin() bool         { return f.admin }

func TestCheck(t *testing.T) {
	tests := []struct {
		name         string
		session      fakeSession
		requireAdmin bool
		want         Decision
	}{
		{
			name:    "loading wins over everything",
			session: fakeSession{loading: true, authenticated: true, admin: true},
			want:    ShowLoading,
		},
		{
			name:         "loading wins even when anonymous and admin required",
			session:      fakeSession{loading: true},
			requireAdmin: true,
			want:         ShowLoading,
		},
		{
			name:    "anonymous redirects to login",
			session: fakeSession{},
			want:    RedirectLogin,
		},
		{
			name:         "anonymous redirects before admin check",
			session:      fakeSession{},
			requireAdmin: true,
			want:         RedirectLogin,
		},
		{
			name:         "authenticated non-admin denied when admin required",
			session:      fakeSession{authenticated: true},
			requireAdmin: true,
			want:         Denied,
		},
		{
			name:    "authenticated non-admin allowed otherwise",
			session: fakeSession{authenticated: true},
			want:    Allow,
		},
		{
			name:         "admin allowed through admin gate",
			session:      fakeSession{authenticated: true, admin: true},
			requireAdmin: true,
			want:         Allow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Check(tt.session, tt.requireAdmin); got != tt.want {
				t.Errorf("Check() = %d, want %d", got, tt.want)
			}
		})
	}
}
