package middleware

import (
	"net/http"

	"food-delivery-app/redirect"

	"github.com/gin-gonic/gin"
)

// RedirectGuard sends callers away from pages their role may not see. It
// expects Auth.Optional to have run first.
func RedirectGuard(g redirect.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if to, ok := g.Check(GetRole(c)); !ok {
			c.Redirect(http.StatusFound, to)
			c.Abort()
			return
		}
		c.Next()
	}
}
