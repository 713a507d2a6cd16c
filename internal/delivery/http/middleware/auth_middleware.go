package middleware

import (
	"strings"

	"nydra/internal/delivery/http/response"
	"nydra/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by the auth middleware for handlers to read.
const (
	ContextKeyUserID       = "userID"
	ContextKeyDeviceClaims = "deviceClaims"
)

// HeaderXDeviceToken carries the device credential on device-scoped routes.
const HeaderXDeviceToken = "X-Device-Token"

// AuthMiddleware provides middleware for JWT authentication and device
// credential checks.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the user bearer token and stores the user ID on the
// request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid token format, must be Bearer token")
		}

		userID, err := m.tokenSvc.VerifyUserToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}

		c.Set(ContextKeyUserID, userID)

		return next(c)
	}
}

// RequireDevice validates the device credential header and stores the device
// claims on the request context. It must run AFTER Authenticate; the
// credential must belong to the authenticated user.
func (m *AuthMiddleware) RequireDevice(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		deviceToken := c.Request().Header.Get(HeaderXDeviceToken)
		if deviceToken == "" {
			return response.Unauthorized(c, "DEVICE_TOKEN_REQUIRED", "Device token header is missing")
		}

		claims, err := m.tokenSvc.VerifyDeviceToken(deviceToken)
		if err != nil {
			return response.Unauthorized(c, "DEVICE_TOKEN_REQUIRED", "Invalid or expired device token")
		}

		userID, ok := c.Get(ContextKeyUserID).(uuid.UUID)
		if !ok {
			return response.Unauthorized(c, "UNAUTHORIZED", "User authentication is missing")
		}
		if claims.UserID != userID {
			return response.Forbidden(c, "DEVICE_OWNERSHIP_VIOLATION", "Device credential belongs to another user")
		}

		c.Set(ContextKeyDeviceClaims, claims)

		return next(c)
	}
}
