// Package auth is the request gateway: CORS, IP whitelisting, bearer or
// API-key authentication and per-key rate limiting, applied before any
// dashboard handler runs.
package auth

import (
	"net"
	"net/http"
	"strings"

	"fandash/pkg/logger"
	"fandash/pkg/utils"
)

// AuthenticateRequestMiddleware builds the gateway middleware from the
// given security configuration.
func AuthenticateRequestMiddleware(cfg SecConfig) func(http.Handler) http.Handler {
	// rate limiters keyed by credential or remote ip
	limiters := &limiterPool{cfg: cfg}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// log request (redacts sensitive headers)
			logger.LogRequest(r)

			// cors preflight
			origin := r.Header.Get("Origin")
			if origin != "" && originAllowed(origin, cfg.AllowedOrigins) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,OPTIONS")
				w.Header().Set("Access-Control-Max-Age", "600")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type,X-API-Key")
				w.Header().Set("Access-Control-Expose-Headers", "X-Role-Name")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			// ip whitelist
			if len(cfg.IPWhitelist) > 0 {
				ip := clientIP(r)
				logger.Debug("ip_check", "ip", ip)
				if !ipWhitelisted(ip, cfg.IPWhitelist) {
					utils.JSONError(w, http.StatusForbidden, utils.CodeForbidden, "forbidden")
					logger.Warn("request_blocked", "reason", "ip_not_whitelisted", "ip", ip, "path", r.URL.Path)
					return
				}
			}

			// probes, metrics and docs stay open for operators
			if openPath(r) {
				r.Header.Set("X-Role-Name", RoleName(RoleUnauth))
				next.ServeHTTP(w, r)
				return
			}

			role, key, hasCred := authenticate(r, cfg)
			logger.Debug("auth_check", "role", RoleName(role), "has_credential", hasCred)

			if role == RoleUnauth {
				utils.JSONError(w, http.StatusUnauthorized, utils.CodeUnauthorized, "unauthorized")
				logger.Warn("request_unauthorized", "path", r.URL.Path, "remote", r.RemoteAddr)
				return
			}
			r.Header.Set("X-Role-Name", RoleName(role))

			// viewers are read-only; mutations need creator or admin
			if role == RoleViewer && r.Method != http.MethodGet {
				utils.JSONError(w, http.StatusForbidden, utils.CodeForbidden, "forbidden")
				logger.Warn("request_forbidden", "reason", "viewer_mutation", "path", r.URL.Path)
				return
			}

			// reset is destructive; admins only
			if strings.HasPrefix(r.URL.Path, "/v1/admin/") && role != RoleAdmin {
				utils.JSONError(w, http.StatusForbidden, utils.CodeForbidden, "forbidden")
				logger.Warn("request_forbidden", "reason", "admin_path", "path", r.URL.Path)
				return
			}

			// rate limiting
			if !limiters.Allow(key) {
				utils.JSONError(w, http.StatusTooManyRequests, utils.CodeRateLimited, "rate limit exceeded")
				logger.Warn("rate_limited", "path", r.URL.Path)
				return
			}

			logger.Info("request_allowed", "method", r.Method, "path", r.URL.Path, "role", r.Header.Get("X-Role-Name"))
			next.ServeHTTP(w, r)
		})
	}
}

func openPath(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	switch r.URL.Path {
	case "/healthz", "/readyz", "/metrics":
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/docs/")
}

func originAllowed(origin string, allowed []string) bool {
	if len(allowed) == 0 {
		return false
	}
	for _, a := range allowed {
		if a == "*" || strings.EqualFold(a, origin) {
			return true
		}
	}
	return false
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func ipWhitelisted(ip string, list []string) bool {
	for _, w := range list {
		if ip == w {
			return true
		}
	}
	return false
}

func authenticate(r *http.Request, cfg SecConfig) (Role, string, bool) {
	// prefer authorization: bearer <key>, fallback to x-api-key
	auth := r.Header.Get("Authorization")
	var key string
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		key = strings.TrimSpace(auth[7:])
	}
	if key == "" {
		key = r.Header.Get("X-API-Key")
	}
	if key == "" {
		// no credential: rate-limit by client ip
		return RoleUnauth, clientIP(r), false
	}
	if cfg.DemoAuth && key == DemoToken {
		return RoleCreator, key, true
	}
	if cfg.AdminKeys != nil {
		if _, ok := cfg.AdminKeys[key]; ok {
			return RoleAdmin, key, true
		}
	}
	if _, ok := cfg.CreatorKeys[key]; ok {
		return RoleCreator, key, true
	}
	if _, ok := cfg.ViewerKeys[key]; ok {
		return RoleViewer, key, true
	}
	return RoleUnauth, key, true
}
