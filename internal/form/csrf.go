package form

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/google/uuid"
)

// CSRFField is the hidden input name every POST form carries.
const CSRFField = "csrf_token"

const csrfSessionKey = "csrf_token"

// ErrInvalidCSRF reports a missing or mismatched form token.
var ErrInvalidCSRF = errors.New("invalid csrf token")

// CSRFToken returns the token bound to the session, creating one on first use.
// The caller is responsible for saving the session.
func CSRFToken(session sessions.Session) string {
	if existing, ok := session.Get(csrfSessionKey).(string); ok && existing != "" {
		return existing
	}
	token := uuid.NewString()
	session.Set(csrfSessionKey, token)
	return token
}

// VerifyCSRF compares the submitted token with the one stored in the session.
func VerifyCSRF(session sessions.Session, submitted string) error {
	expected, ok := session.Get(csrfSessionKey).(string)
	submitted = strings.TrimSpace(submitted)
	if !ok || expected == "" || submitted == "" {
		return ErrInvalidCSRF
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(submitted)) != 1 {
		return ErrInvalidCSRF
	}
	return nil
}
