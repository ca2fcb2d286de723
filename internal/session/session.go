// Package session issues the opaque token identifying an anonymous browsing
// session. The token travels in a cookie, the server-side counterpart of the
// storefront's local-storage slot, and is read on every analytics write.
//
// Collision probability is not cryptographically bounded; the token is good
// enough for analytics attribution and must never act as an auth credential.
package session

import (
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

// CookieName is the fixed storage key for the session identity.
const CookieName = "sessionId"

const suffixLen = 9

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID synthesises a fresh session token from a coarse timestamp plus a
// random base36 suffix, e.g. "session_1735689600123_k3j9x0q2f".
func NewID() string {
	suffix := make([]byte, suffixLen)
	for i := range suffix {
		suffix[i] = base36[rand.Intn(len(base36))]
	}
	return "session_" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + string(suffix)
}

// FromRequest returns the session token carried by r, or "" when absent.
func FromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// GetOrCreate returns the request's session token, minting and setting one
// when absent. Repeated calls within the same cookie lifetime return the
// identical token; the cookie never expires or rotates.
func GetOrCreate(w http.ResponseWriter, r *http.Request) string {
	if id := FromRequest(r); id != "" {
		return id
	}

	id := NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int((10 * 365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
