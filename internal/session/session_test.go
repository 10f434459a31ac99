package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := NewCodec("secret-a")
	sid := c.Issue()

	got, ok := c.Decode(c.Encode(sid))
	require.True(t, ok)
	assert.Equal(t, sid, got)
}

func TestDecodeRejectsTamperedID(t *testing.T) {
	c := NewCodec("secret-a")
	value := c.Encode(c.Issue())

	tampered := "x" + value[1:]
	_, ok := c.Decode(tampered)
	assert.False(t, ok)
}

func TestDecodeRejectsForeignSecret(t *testing.T) {
	a := NewCodec("secret-a")
	b := NewCodec("secret-b")

	_, ok := b.Decode(a.Encode(a.Issue()))
	assert.False(t, ok)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	c := NewCodec("secret-a")
	for _, v := range []string{"", "no-dot", ".sig-only", "id."} {
		_, ok := c.Decode(v)
		assert.False(t, ok, "value %q", v)
	}
}

func TestCookieRoundTrip(t *testing.T) {
	c := NewCodec("secret-a")
	sid := c.Issue()

	rec := httptest.NewRecorder()
	c.SetCookie(rec, sid)

	res := rec.Result()
	require.Len(t, res.Cookies(), 1)
	ck := res.Cookies()[0]
	assert.Equal(t, CookieName, ck.Name)
	assert.True(t, ck.HttpOnly)
	assert.True(t, strings.HasPrefix(ck.Value, sid+"."))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	got, ok := c.FromRequest(req)
	require.True(t, ok)
	assert.Equal(t, sid, got)
}

func TestFromRequestWithoutCookie(t *testing.T) {
	c := NewCodec("secret-a")
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := c.FromRequest(req)
	assert.False(t, ok)
}
