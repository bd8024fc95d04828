package api

import (
	"net/http"

	"complaint_tracker/internal/identity"
	"complaint_tracker/internal/middleware"
	"complaint_tracker/internal/notify"

	"github.com/gin-gonic/gin"
)

// ProfileResponse is the user record without its password.
type ProfileResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	Bio       string `json:"bio"`
	Settings  struct {
		NotifyEmail bool `json:"notifyEmail"`
		NotifyInApp bool `json:"notifyInApp"`
	} `json:"settings"`
}

// UpdateProfileRequest carries the editable profile fields. The username is
// the identity key; changing it renames the account.
type UpdateProfileRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Mobile      string `json:"mobile"`
	Bio         string `json:"bio"`
	NotifyEmail *bool  `json:"notifyEmail"`
	NotifyInApp *bool  `json:"notifyInApp"`
}

// ChangePasswordRequest carries a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// GetProfileHandler returns the logged-in user's profile.
func GetProfileHandler(mgr *identity.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		user, err := mgr.UserByName(sess.Username)
		if err != nil {
			fail(c, err)
			return
		}
		var resp ProfileResponse
		resp.Username = user.Username
		resp.Email = user.Email
		resp.Mobile = user.Mobile
		resp.Role = user.Role
		resp.CreatedAt = user.CreatedAt
		resp.Bio = user.Bio
		resp.Settings.NotifyEmail = user.Settings.NotifyEmail
		resp.Settings.NotifyInApp = user.Settings.NotifyInApp
		c.JSON(http.StatusOK, resp)
	}
}

// UpdateProfileHandler rewrites the profile and refreshes the session.
// Omitted notification flags keep their default of true.
func UpdateProfileHandler(mgr *identity.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		upd := identity.ProfileUpdate{
			Username:    req.Username,
			Email:       req.Email,
			Mobile:      req.Mobile,
			Bio:         req.Bio,
			NotifyEmail: req.NotifyEmail == nil || *req.NotifyEmail,
			NotifyInApp: req.NotifyInApp == nil || *req.NotifyInApp,
		}
		if err := mgr.UpdateProfile(upd); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
	}
}

// ChangePasswordHandler replaces the logged-in user's password.
func ChangePasswordHandler(mgr *identity.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := mgr.ChangePassword(req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
	}
}

// NotificationsHandler lists the logged-in user's notifications.
func NotificationsHandler(sink *notify.Sink) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		notifications, err := sink.Notifications(sess.Username)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": notifications})
	}
}

// MarkNotificationsReadHandler flips the logged-in user's notifications to
// read.
func MarkNotificationsReadHandler(sink *notify.Sink) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		if err := sink.MarkAllRead(sess.Username); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notifications marked read"})
	}
}
