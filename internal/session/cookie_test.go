package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCookies(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   map[string]string
	}{
		{"empty header", "", map[string]string{}},
		{"single", "session_id=abc", map[string]string{"session_id": "abc"}},
		{"trims whitespace", " name = Pikachu ;type=Electric ", map[string]string{"name": "Pikachu", "type": "Electric"}},
		{"skips segment without equals", "flag; name=Eevee", map[string]string{"name": "Eevee"}},
		{"skips empty name", "=orphan; a=1", map[string]string{"a": "1"}},
		{"first duplicate wins", "a=1; a=2", map[string]string{"a": "1"}},
		{"strips quotes", `a="quoted"`, map[string]string{"a": "quoted"}},
		{"empty value kept", "a=", map[string]string{"a": ""}},
		{"value containing equals", "token=x=y", map[string]string{"token": "x=y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCookies(tt.header))
		})
	}
}

func TestCookieHeader_RoundTrip(t *testing.T) {
	in := map[string]string{"name": "Pikachu", "type": "Electric"}

	header := FormatCookieHeader(in)

	assert.Equal(t, "name=Pikachu; type=Electric", header)
	assert.Equal(t, in, ParseCookies(header))
}

func TestSerializeCookie(t *testing.T) {
	got := SerializeCookie(CookieName, "abc", DefaultCookieOptions())
	assert.Equal(t, "session_id=abc; Path=/; HttpOnly; SameSite=Lax", got)

	got = SerializeCookie("theme", "dark", CookieOptions{
		Path:    "/pokemon",
		Expires: time.Date(2030, time.January, 2, 3, 4, 5, 0, time.UTC),
	})
	assert.Equal(t, "theme=dark; Path=/pokemon; Expires=Wed, 02 Jan 2030 03:04:05 GMT", got)
}

func TestSetCookie_ReplacesPreviousHeader(t *testing.T) {
	w := httptest.NewRecorder()

	SetCookie(w, "first", CookieOptions{})
	SetCookie(w, "second", CookieOptions{})

	values := w.Header().Values("Set-Cookie")
	assert.Len(t, values, 1)
	assert.Equal(t, "session_id=second; Path=/; HttpOnly", values[0])
}

func TestClearCookie_ExpiresInThePast(t *testing.T) {
	w := httptest.NewRecorder()
	SetCookie(w, "abc", DefaultCookieOptions())

	ClearCookie(w, DefaultCookieOptions())

	values := w.Header().Values("Set-Cookie")
	assert.Len(t, values, 1)
	assert.Contains(t, values[0], "session_id=;")
	assert.Contains(t, values[0], "Expires=Thu, 01 Jan 1970 00:00:00 GMT")
	assert.Contains(t, values[0], "Max-Age=0")

	res := http.Response{Header: w.Header()}
	cookies := res.Cookies()
	if assert.Len(t, cookies, 1) {
		assert.True(t, cookies[0].Expires.Before(time.Now()))
	}
}
