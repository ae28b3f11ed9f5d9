package middleware

import (
	"net/http"
	"strings"
	"time"

	"food-delivery-app/models"
	"food-delivery-app/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserID    = "userID"
	ctxEmail     = "email"
	ctxRole      = "role"
	ctxSessionID = "sessionID"
)

type Claims struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Auth authenticates requests either with a Bearer JWT or with the session cookie.
type Auth struct {
	secret   []byte
	ttl      time.Duration
	sessions *session.Manager
	cookie   string
}

func NewAuth(secret []byte, ttl time.Duration, sessions *session.Manager, cookie string) *Auth {
	return &Auth{secret: secret, ttl: ttl, sessions: sessions, cookie: cookie}
}

func (a *Auth) CookieName() string { return a.cookie }

// GenerateToken creates a signed JWT for a given user
func (a *Auth) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Auth) parseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// identify fills the context from the bearer token or the session cookie and
// reports whether the caller is authenticated. A present but invalid token is
// reported through errMsg.
func (a *Auth) identify(c *gin.Context) (ok bool, errMsg string) {
	if header := c.GetHeader("Authorization"); header != "" {
		if !strings.HasPrefix(header, "Bearer ") {
			return false, "Authorization header required (Bearer <token>)"
		}
		claims, err := a.parseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return false, "Invalid or expired token"
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, string(claims.Role))
		return true, ""
	}

	if a.sessions == nil {
		return false, "Authentication required"
	}
	id, err := c.Cookie(a.cookie)
	if err != nil || id == "" {
		return false, "Authentication required"
	}
	sess, err := a.sessions.Resolve(c.Request.Context(), id)
	if err != nil || sess == nil {
		return false, "Session expired, please log in again"
	}
	c.Set(ctxUserID, sess.UserID)
	c.Set(ctxRole, string(sess.Role))
	c.Set(ctxSessionID, sess.ID)
	return true, ""
}

// Required rejects unauthenticated requests with 401.
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, msg := a.identify(c); !ok {
			abort(c, http.StatusUnauthorized, msg)
			return
		}
		c.Next()
	}
}

// Optional identifies the caller when it can and never rejects.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		a.identify(c)
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole := GetRole(c)
		if callerRole == "" {
			abort(c, http.StatusForbidden, "Role not found in context")
			return
		}
		for _, r := range roles {
			if callerRole == r {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "Access denied. Required role(s): "+rolesString(roles))
	}
}

func rolesString(roles []models.UserRole) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": msg})
}

// GetUserID extracts caller user ID from context, "" when anonymous.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetRole extracts caller role from context
func GetRole(c *gin.Context) models.UserRole {
	return models.UserRole(c.GetString(ctxRole))
}

// GetSessionID is set only for cookie-authenticated requests.
func GetSessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
