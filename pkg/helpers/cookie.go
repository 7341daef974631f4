package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie = "access_token"
	// LegacyTokenCookie is still accepted by the session gate.
	LegacyTokenCookie = "token"
)

type Manager struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func NewCookie(domain string, secure bool, sameSite http.SameSite) *Manager {
	// Browsers drop SameSite=None cookies that are not Secure.
	if sameSite == http.SameSiteNoneMode {
		secure = true
	}
	return &Manager{Domain: domain, Secure: secure, SameSite: sameSite}
}

// SetAccess stores the session token as an httpOnly cookie.
func (m *Manager) SetAccess(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(m.SameSite)
	c.SetCookie(AccessTokenCookie, token, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(m.SameSite)
	c.SetCookie(AccessTokenCookie, "", -1, "/", m.Domain, m.Secure, true)
	c.SetCookie(LegacyTokenCookie, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
