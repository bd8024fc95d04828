package api

import (
	"net/http"

	"complaint_tracker/internal/complaints"
	"complaint_tracker/internal/domain"
	"complaint_tracker/internal/middleware"
	"complaint_tracker/internal/stats"

	"github.com/gin-gonic/gin"
)

// SetStatusRequest changes a complaint's workflow status.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatusHandler moves a complaint through the triage workflow. The acting
// admin's username lands in the history trail.
func SetStatusHandler(repo *complaints.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status required"})
			return
		}
		valid := false
		for _, s := range domain.Statuses {
			if s == req.Status {
				valid = true
				break
			}
		}
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
			return
		}
		sess := middleware.CurrentSession(c)
		id := c.Param("id")
		if err := repo.SetStatus(id, req.Status, sess.Username); err != nil {
			fail(c, err)
			return
		}
		complaint, err := repo.Get(id)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, complaint)
	}
}

// DeleteComplaintHandler removes a complaint outright.
func DeleteComplaintHandler(repo *complaints.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Delete(c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Complaint deleted"})
	}
}

// FilteredComplaintsHandler returns complaints narrowed by the admin's
// filter mode. Unknown modes fall through to the full list.
func FilteredComplaintsHandler(repo *complaints.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := complaints.Filter{
			Mode:  complaints.FilterMode(c.DefaultQuery("mode", string(complaints.FilterAll))),
			Value: c.Query("value"),
		}
		items, err := repo.Filtered(f)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"complaints": items})
	}
}

// DashboardHandler aggregates the numbers behind the admin stats page.
func DashboardHandler(repo *complaints.Repository, svc *stats.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List()
		if err != nil {
			fail(c, err)
			return
		}
		users, err := svc.UserCount()
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"total":      len(items),
			"byStatus":   stats.CountsByStatus(items),
			"byCategory": stats.CountsByCategory(items),
			"users":      users,
		})
	}
}

// LeaderboardHandler ranks users by report volume.
func LeaderboardHandler(svc *stats.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := svc.Ranking()
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
	}
}
