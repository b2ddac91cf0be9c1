package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSessionCookies_EncodeDecode(t *testing.T) {
	sc, err := NewSessionCookies(testSessionConfig())
	require.NoError(t, err)
	rapid.Check(t, func(rt *rapid.T) {
		key := rapid.StringMatching(`[a-f0-9-]{1,40}`).Draw(rt, "key")
		got, ok := sc.Decode(sc.Encode(key))
		assert.True(rt, ok)
		assert.Equal(rt, key, got)
	})
}

func TestSessionCookies_RejectsForeignSignature(t *testing.T) {
	sc, err := NewSessionCookies(testSessionConfig())
	require.NoError(t, err)
	cfg := testSessionConfig()
	cfg.SecretKey = "another-secret-of-enough-length"
	other, err := NewSessionCookies(cfg)
	require.NoError(t, err)

	for _, v := range []string{"", "abc", ".sig", "abc.", other.Encode("abc")} {
		_, ok := sc.Decode(v)
		assert.False(t, ok, v)
	}
}

func TestSessionCookies_LongSecret(t *testing.T) {
	cfg := testSessionConfig()
	cfg.SecretKey = strings.Repeat("s", 200)
	sc, err := NewSessionCookies(cfg)
	require.NoError(t, err)
	key, ok := sc.Decode(sc.Encode("k1"))
	assert.True(t, ok)
	assert.Equal(t, "k1", key)
}

func TestSessionCookies_KeyReusesValidCookie(t *testing.T) {
	sc, err := NewSessionCookies(testSessionConfig())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	first := sc.Key(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, first)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	assert.Equal(t, first, sc.Key(rec, req))
	assert.Empty(t, rec.Result().Cookies())
}
