package middleware

import (
	"strings"

	"paperdesk_backend/internal/auth"
	"paperdesk_backend/internal/logger"
	"paperdesk_backend/internal/models"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// loadUser authenticates the request and reloads the account row, so a
// deactivated or locked user loses access on their next call even with
// a live token.
func loadUser(c *gin.Context, userRepo repositories.UserRepository) (*models.User, error) {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		return nil, apperrors.NewUnauthorizedError("Not authorized to access this route")
	}

	claims, err := auth.ParseAccessToken(tokenStr)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Not authorized to access this resource")
	}

	user, err := userRepo.FindByID(claims.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("users", "No user found with this id")
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.IsActive {
		return nil, apperrors.New(apperrors.CodeAccountInactive, "auth",
			"Your account is inactive: activate your account", 401)
	}
	if user.IsLocked {
		return nil, apperrors.New(apperrors.CodeAccountLocked, "auth",
			"Your account is locked: contact the admin", 401)
	}

	return user, nil
}

func setCurrentUser(c *gin.Context, user *models.User) {
	c.Set(currentUserKey, user)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
}

// RequireUser admits any active authenticated account.
func RequireUser(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := loadUser(c, userRepo)
		if err != nil {
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		setCurrentUser(c, user)
		c.Next()
	}
}

// RequireAdmin admits only administrator accounts.
func RequireAdmin(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := loadUser(c, userRepo)
		if err != nil {
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		if !user.IsAdmin {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Only Admins Allowed"))
			c.Abort()
			return
		}

		setCurrentUser(c, user)
		c.Next()
	}
}

// RequireWriter admits only writer accounts.
func RequireWriter(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := loadUser(c, userRepo)
		if err != nil {
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		if !user.IsWriter {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Only Writers Allowed"))
			c.Abort()
			return
		}

		setCurrentUser(c, user)
		c.Next()
	}
}

// CurrentUser returns the account loaded by the access-control
// middleware.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
