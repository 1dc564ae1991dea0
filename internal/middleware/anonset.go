package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ivdepaste/ivdepaste-api/pkg/config"
)

// AnonSet manages the anonymous ownership set: the ordered list of paste
// ids this browser created while unauthenticated, carried in a cookie as
// base64-encoded JSON. It is a capability list for the guest "my pastes"
// view and bulk delete, nothing more; the store's own access rules are
// the actual security boundary.
type AnonSet struct {
	cfg config.PasteConfig
}

// NewAnonSet constructs the cookie codec.
func NewAnonSet(cfg config.PasteConfig) *AnonSet {
	if cfg.AnonCookieName == "" {
		cfg.AnonCookieName = "ivdepaste_anon_ids"
	}
	if cfg.AnonSetLimit <= 0 {
		cfg.AnonSetLimit = 100
	}
	return &AnonSet{cfg: cfg}
}

// Read returns the current set, oldest first. A missing or malformed
// cookie reads as empty; a stale cookie is never an error.
func (a *AnonSet) Read(c *gin.Context) []string {
	raw, err := c.Cookie(a.cfg.AnonCookieName)
	if err != nil || raw == "" {
		return nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}

	var ids []string
	if err := json.Unmarshal(decoded, &ids); err != nil {
		return nil
	}
	return dedupe(ids)
}

// Append adds a freshly created paste id and rewrites the cookie. Called
// only after the remote insert was acknowledged so the set never tracks
// an id that does not exist remotely. The set is bounded; when full, the
// oldest ids fall off.
func (a *AnonSet) Append(c *gin.Context, id string) {
	ids := append(a.Read(c), id)
	ids = dedupe(ids)
	if len(ids) > a.cfg.AnonSetLimit {
		ids = ids[len(ids)-a.cfg.AnonSetLimit:]
	}
	a.write(c, ids)
}

// Remove drops the given ids from the set and rewrites the cookie.
func (a *AnonSet) Remove(c *gin.Context, remove []string) {
	current := a.Read(c)
	if len(current) == 0 {
		return
	}

	drop := make(map[string]struct{}, len(remove))
	for _, id := range remove {
		drop[id] = struct{}{}
	}

	kept := current[:0]
	for _, id := range current {
		if _, gone := drop[id]; !gone {
			kept = append(kept, id)
		}
	}
	a.write(c, kept)
}

func (a *AnonSet) write(c *gin.Context, ids []string) {
	if len(ids) == 0 {
		c.SetCookie(a.cfg.AnonCookieName, "", -1, "/", "", false, true)
		return
	}

	payload, err := json.Marshal(ids)
	if err != nil {
		return
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)

	maxAge := int(a.cfg.AnonCookieMaxAge.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cfg.AnonCookieName, encoded, maxAge, "/", "", false, true)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
