package auth

import "net/http"

// Role represents the resolved caller role for a request.
type Role int

const (
	RoleUnauth Role = iota
	RoleViewer
	RoleCreator
	RoleAdmin
)

// DemoToken is the fixed bearer token the bundled demo frontend sends. It
// resolves to the creator role so the dashboard works out of the box.
const DemoToken = "mock_valid_token_12345"

// SecConfig drives authentication, CORS and rate limiting. Put here so
// limiter.go and gateway.go can reference the shared type.
type SecConfig struct {
	AllowedOrigins []string
	RPS            float64
	Burst          int
	IPWhitelist    []string
	ViewerKeys     map[string]struct{}
	CreatorKeys    map[string]struct{}
	AdminKeys      map[string]struct{}

	// DemoAuth accepts DemoToken as a creator credential.
	DemoAuth bool
}

// RoleName is the header value exposed to downstream handlers.
func RoleName(role Role) string {
	switch role {
	case RoleViewer:
		return "viewer"
	case RoleCreator:
		return "creator"
	case RoleAdmin:
		return "admin"
	default:
		return "unauth"
	}
}

// RoleFromRequest reads back the role the gateway stamped on the request.
func RoleFromRequest(r *http.Request) string {
	return r.Header.Get("X-Role-Name")
}
