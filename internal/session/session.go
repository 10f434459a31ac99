package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const CookieName = "sf_session"

// Codec issues opaque session ids and signs them into a cookie value of
// the form "{id}.{hex hmac}". The id is all the server stores client
// side; cart state lives in Redis under it.
type Codec struct {
	secret []byte
	maxAge time.Duration
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), maxAge: 7 * 24 * time.Hour}
}

func (c *Codec) Issue() string { return uuid.NewString() }

func (c *Codec) Encode(sessionID string) string {
	return sessionID + "." + c.sign(sessionID)
}

// Decode returns the session id when the signature checks out.
func (c *Codec) Decode(value string) (string, bool) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(id))) {
		return "", false
	}
	return id, true
}

func (c *Codec) sign(sessionID string) string {
	m := hmac.New(sha256.New, c.secret)
	m.Write([]byte(sessionID))
	return hex.EncodeToString(m.Sum(nil))
}

// FromRequest extracts a valid session id from the request cookie.
func (c *Codec) FromRequest(r *http.Request) (string, bool) {
	ck, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return c.Decode(ck.Value)
}

func (c *Codec) SetCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    c.Encode(sessionID),
		Path:     "/",
		MaxAge:   int(c.maxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
