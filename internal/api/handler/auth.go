package handler

import (
	"net/http"
	"time"

	"unicare/backend/internal/authz"
	apperrors "unicare/backend/pkg/errors"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

// generateJWT issues a signed session token carrying the user's ID and role.
func (h *Handler) generateJWT(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
		"iss":     "unicare-service",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}

// validateJWT parses a token and returns the actor it identifies.
func (h *Handler) validateJWT(tokenString string) (authz.Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.Unauthorized("unexpected signing method")
		}
		return h.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return authz.Actor{}, apperrors.Unauthorized("invalid token or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return authz.Actor{}, apperrors.Unauthorized("invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return authz.Actor{}, apperrors.Unauthorized("invalid token claims")
	}
	return authz.Actor{ID: userID, Role: role}, nil
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return "", false
	}
	return authHeader[7:], true
}

// RequireAuth validates the bearer token and stores the actor in the gin
// context for downstream handlers.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}
		actor, err := h.validateJWT(tokenString)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.Set("actor", actor)
		c.Next()
	}
}

// actorFrom reads the actor RequireAuth stored on the context.
func actorFrom(c *gin.Context) authz.Actor {
	actor, _ := c.Get("actor")
	return actor.(authz.Actor)
}

type registerRequest struct {
	Email          string `json:"email" binding:"required"`
	Password       string `json:"password" binding:"required"`
	DisplayName    string `json:"display_name"`
	AgeBracket     string `json:"age_bracket" binding:"required"`
	ConsentMinorOk bool   `json:"consent_minor_ok"`
}

// Register creates a student account and returns a session token.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperrors.InvalidArg(err.Error()))
		return
	}

	user, err := h.Identity.Register(req.Email, req.Password, req.DisplayName, req.AgeBracket, req.ConsentMinorOk)
	if err != nil {
		abortWithError(c, err)
		return
	}

	token, err := h.generateJWT(user.ID, user.Role)
	if err != nil {
		abortWithError(c, apperrors.Internal("failed to create token"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and returns a session token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperrors.InvalidArg(err.Error()))
		return
	}

	user, err := h.Identity.Authenticate(req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	token, err := h.generateJWT(user.ID, user.Role)
	if err != nil {
		abortWithError(c, apperrors.Internal("failed to create token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GetProfile returns the caller's account.
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.Identity.GetProfile(actorFrom(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	DisplayName string   `json:"display_name"`
	Specialties []string `json:"specialties"`
}

// UpdateProfile changes the caller's display name and specialties.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperrors.InvalidArg(err.Error()))
		return
	}
	user, err := h.Identity.UpdateProfile(actorFrom(c), req.DisplayName, req.Specialties)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type changePasswordRequest struct {
	Current string `json:"current" binding:"required"`
	Next    string `json:"next" binding:"required"`
}

// ChangePassword rotates the caller's password.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperrors.InvalidArg(err.Error()))
		return
	}
	if err := h.Identity.ChangePassword(actorFrom(c), req.Current, req.Next); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteAccount removes the caller's account.
func (h *Handler) DeleteAccount(c *gin.Context) {
	if err := h.Identity.DeleteAccount(actorFrom(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
