package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weatherfit/internal/domain/auth"
)

const (
	authClaimsKey = "auth_claims"
	userIDKey     = "user_id"
)

// setClaims stores the validated token on the request. The user id is kept
// separately so log lines can pick it up without a type assertion.
func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(authClaimsKey, claims)
	c.Set(userIDKey, claims.UserID)
}

func getClaims(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(authClaimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}

// currentUser returns the caller's id, aborting with 401 when the route was
// reached without authMiddleware.
func currentUser(c *gin.Context) (int64, bool) {
	claims, ok := getClaims(c)
	if !ok || claims.UserID <= 0 {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing token", nil))
		return 0, false
	}
	return claims.UserID, true
}

// requestScope is the set of log attributes identifying the request and,
// once authenticated, its caller.
func requestScope(c *gin.Context) []any {
	attrs := []any{"request_id", c.GetString(requestIDKey)}
	if id := c.GetInt64(userIDKey); id > 0 {
		attrs = append(attrs, "user_id", id)
	}
	return attrs
}
