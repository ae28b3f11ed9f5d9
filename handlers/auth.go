package handlers

import (
	"errors"
	"net/http"
	"strings"

	"food-delivery-app/apperror"
	"food-delivery-app/middleware"
	"food-delivery-app/models"
	"food-delivery-app/redirect"
	"food-delivery-app/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required"`
	Phone    string          `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	db       *gorm.DB
	auth     *middleware.Auth
	sessions *session.Manager
}

func NewAuthHandler(db *gorm.DB, auth *middleware.Auth, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{db: db, auth: auth, sessions: sessions}
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.Role.Valid() {
		fail(c, apperror.Validation("Invalid role. Must be: customer, restaurant, driver, or admin"))
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	if existing > 0 {
		fail(c, apperror.Conflict("Email already registered"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, apperror.Internal(errors.New("failed to hash password")))
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Phone:        req.Phone,
	}
	if err := h.db.Create(&user).Error; err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	h.issue(c, &user, http.StatusCreated)
}

// Login checks the credentials, returns a JWT and starts a cookie session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var user models.User
	err := h.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, apperror.Internal(err))
		return
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		fail(c, apperror.Unauthorized("Invalid email or password"))
		return
	}
	h.issue(c, &user, http.StatusOK)
}

func (h *AuthHandler) issue(c *gin.Context, user *models.User, status int) {
	token, err := h.auth.GenerateToken(user)
	if err != nil {
		fail(c, apperror.Internal(errors.New("failed to generate token")))
		return
	}
	sess, err := h.sessions.Create(c.Request.Context(), user)
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.auth.CookieName(), sess.ID, int(h.sessions.TTL().Seconds()), "/", "", false, true)

	ok(c, status, gin.H{
		"token":       token,
		"user":        user.Summary(),
		"redirectUrl": redirect.Resolve(user.Role, ""),
	})
}

// Logout drops the cookie session. Bearer tokens simply expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(h.auth.CookieName()); err == nil {
		if err := h.sessions.Destroy(c.Request.Context(), id); err != nil {
			fail(c, apperror.Internal(err))
			return
		}
	}
	c.SetCookie(h.auth.CookieName(), "", -1, "/", "", false, true)
	ok(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Profile returns the authenticated user's profile
func (h *AuthHandler) Profile(c *gin.Context) {
	var user models.User
	err := h.db.Where("id = ?", middleware.GetUserID(c)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, apperror.NotFound("User not found"))
		return
	}
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, user)
}

// Redirect tells the client where the current session belongs. It always
// answers 200 and falls back to "/" when anything goes wrong.
func (h *AuthHandler) Redirect(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusOK, gin.H{"redirectUrl": redirect.Home})
		return
	}
	var user models.User
	if err := h.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Error(err)
		}
		c.JSON(http.StatusOK, gin.H{"redirectUrl": redirect.Home})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"redirectUrl": redirect.Resolve(user.Role, redirect.DefaultFallback),
		"user":        user.Summary(),
	})
}
