package middleware

import (
	"net/http"
	"slices"
	"strings"

	"rately/internal/domain/entity"
	"rately/internal/domain/service"
	"rately/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUserID = "userID"
	ContextKeyRole   = "role"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the JWT access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		token, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil || !token.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Failed to parse token claims"})
		}

		// Extract account ID
		userIDStr, ok := claims["sub"].(string)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Account ID missing from token"})
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid account ID format in token"})
		}

		// Extract role
		roleStr, _ := claims["role"].(string)
		role, ok := entity.RoleFromString(roleStr)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Role missing from token"})
		}

		// Set caller identity on the context for handlers to use
		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyRole, role)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks whether the caller holds
// one of the allowed roles. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(allowed ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleVal := c.Get(ContextKeyRole)
			role, ok := roleVal.(entity.Role)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: role information missing"})
			}

			if !slices.Contains(allowed, role) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: insufficient role"})
			}

			return next(c)
		}
	}
}

// GetActor resolves the authenticated caller set by Authenticate.
func GetActor(c echo.Context) (usecase.Actor, bool) {
	userID, okID := c.Get(ContextKeyUserID).(uuid.UUID)
	role, okRole := c.Get(ContextKeyRole).(entity.Role)
	if !okID || !okRole {
		return usecase.Actor{}, false
	}

	return usecase.Actor{ID: userID, Role: role}, true
}
