package dashboard

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/beauty-advisor/internal/advisor"
)

// SessionCookie names the cookie carrying the visitor's session id.
const SessionCookie = "advisor_session"

// cookieMaxAge keeps the id long enough for the stored selection to be
// found again on a later visit.
const cookieMaxAge = 365 * 24 * time.Hour

// resolveSession returns the visitor's session. The cookie is non-nil when
// the client must be told a new id.
func (d *Dashboard) resolveSession(r *http.Request) (*advisor.Session, *http.Cookie, error) {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil && validSessionID(c.Value) {
		id = c.Value
	}

	sess, err := d.registry.GetOrCreate(r.Context(), id)
	if err != nil {
		return nil, nil, err
	}
	if sess.ID == id {
		return sess, nil, nil
	}
	return sess, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   d.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// validSessionID accepts only ids in the canonical form the server issues.
func validSessionID(v string) bool {
	parsed, err := uuid.Parse(v)
	return err == nil && parsed.String() == v
}

// session resolves the session for an HTTP handler and sets the cookie.
// On failure it writes the error response and returns nil.
func (d *Dashboard) session(w http.ResponseWriter, r *http.Request) *advisor.Session {
	sess, cookie, err := d.resolveSession(r)
	if err != nil {
		d.logger.Error("resolving session failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "session unavailable")
		return nil
	}
	if cookie != nil {
		http.SetCookie(w, cookie)
	}
	return sess
}
