package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieManager(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("set access cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		NewCookie("", false, http.SameSiteLaxMode).SetAccess(c, "tok", time.Now().Add(time.Hour))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, AccessTokenCookie, cookies[0].Name)
		assert.Equal(t, "tok", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.False(t, cookies[0].Secure)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
		assert.InDelta(t, 3600, cookies[0].MaxAge, 5)
	})

	t.Run("samesite none forces secure", func(t *testing.T) {
		m := NewCookie("example.com", false, http.SameSiteNoneMode)
		assert.True(t, m.Secure)
	})

	t.Run("clear expires both cookies", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		NewCookie("", false, http.SameSiteLaxMode).Clear(c)

		names := map[string]bool{}
		for _, ck := range w.Result().Cookies() {
			names[ck.Name] = true
			assert.Empty(t, ck.Value)
			assert.Less(t, ck.MaxAge, 0)
		}
		assert.True(t, names[AccessTokenCookie])
		assert.True(t, names[LegacyTokenCookie])
	})
}
