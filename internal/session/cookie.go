package session

import (
	"net/http"
	"sort"
	"strings"
	"time"
)

const (
	CookieName = "session_id"
)

// CookieOptions defines how cookies are issued.
type CookieOptions struct {
	Path     string
	Domain   string
	Expires  time.Time
	MaxAge   int
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
}

// DefaultCookieOptions are used for the session cookie when the caller
// has no opinion. Secure is off because the server speaks plain HTTP.
func DefaultCookieOptions() CookieOptions {
	return CookieOptions{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// normalize applies safe defaults without breaking callers
func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/"
	}
	if !o.HttpOnly {
		o.HttpOnly = true
	}
	return o
}

// ParseCookies turns a Cookie request header into a name → value map.
//
// Parsing is lenient: segments without '=' or with an empty name are
// skipped instead of failing the request. Names and values are trimmed,
// one pair of surrounding double quotes is removed from values, and the
// first occurrence of a repeated name wins.
func ParseCookies(header string) map[string]string {
	cookies := make(map[string]string)

	for _, part := range strings.Split(header, ";") {
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}

		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, seen := cookies[name]; seen {
			continue
		}

		value = strings.TrimSpace(value)
		if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
			value = value[1 : len(value)-1]
		}

		cookies[name] = value
	}

	return cookies
}

// SerializeCookie renders a single Set-Cookie header value.
func SerializeCookie(name, value string, opts CookieOptions) string {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     opts.Path,
		Domain:   opts.Domain,
		Expires:  opts.Expires,
		MaxAge:   opts.MaxAge,
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	}
	return c.String()
}

// FormatCookieHeader renders a Cookie request header from a name → value
// map. Names are sorted so the output is stable.
func FormatCookieHeader(cookies map[string]string) string {
	names := make([]string, 0, len(cookies))
	for name := range cookies {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+cookies[name])
	}
	return strings.Join(parts, "; ")
}

// SetCookie issues the session cookie to the client. Any Set-Cookie header
// already on the response is replaced, so a response carries exactly one.
func SetCookie(
	w http.ResponseWriter,
	sessionID string,
	opts CookieOptions,
) {
	opts = opts.normalize()

	w.Header().Set("Set-Cookie", SerializeCookie(CookieName, sessionID, opts))
}

// ClearCookie expires the session cookie on the client.
func ClearCookie(
	w http.ResponseWriter,
	opts CookieOptions,
) {
	opts = opts.normalize()
	opts.Expires = time.Unix(0, 0)
	opts.MaxAge = -1

	w.Header().Set("Set-Cookie", SerializeCookie(CookieName, "", opts))
}
