package api

import (
	"net/http"

	"complaint_tracker/internal/complaints"
	"complaint_tracker/internal/export"
	"complaint_tracker/internal/geo"
	"complaint_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SubmitComplaintRequest carries a new complaint. Photos are data URLs the
// way the original client embedded them.
type SubmitComplaintRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Category     string   `json:"category"`
	LocationText string   `json:"locationText"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	Photos       []string `json:"photos"`
	Anonymous    bool     `json:"anonymous"`
}

// CommentRequest carries a comment for a complaint's thread.
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// SubmitComplaintHandler files a complaint. When coordinates arrive without
// a location text, the geocoder fills it in, degrading to formatted
// coordinates on failure.
func SubmitComplaintHandler(repo *complaints.Repository, geocoder *geo.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitComplaintRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Fill title & description"})
			return
		}
		if req.LocationText == "" && req.Lat != nil && req.Lng != nil && geocoder != nil {
			req.LocationText = geocoder.ReverseGeocode(c.Request.Context(), *req.Lat, *req.Lng)
		}
		sub := complaints.Submission{
			Title:        req.Title,
			Description:  req.Description,
			Category:     req.Category,
			LocationText: req.LocationText,
			Lat:          req.Lat,
			Lng:          req.Lng,
			Photos:       req.Photos,
			Anonymous:    req.Anonymous,
		}
		complaint, err := repo.Submit(sub, middleware.CurrentSession(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, complaint)
	}
}

// ListComplaintsHandler returns every complaint, most recent first.
func ListComplaintsHandler(repo *complaints.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List()
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"complaints": items})
	}
}

// MyComplaintsHandler returns the logged-in user's own complaints.
func MyComplaintsHandler(repo *complaints.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		items, err := repo.ListByUser(sess.Username)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"complaints": items})
	}
}

// GetComplaintHandler returns one complaint for the detail view.
func GetComplaintHandler(repo *complaints.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		complaint, err := repo.Get(c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, complaint)
	}
}

// UpvoteHandler bumps a complaint's counter. No de-duplication.
func UpvoteHandler(repo *complaints.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		upvotes, err := repo.Upvote(c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"upvotes": upvotes})
	}
}

// AddCommentHandler appends to a complaint's embedded thread. Anonymous
// callers comment as "anonymous".
func AddCommentHandler(repo *complaints.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Write something"})
			return
		}
		by := ""
		if sess := middleware.CurrentSession(c); sess != nil {
			by = sess.Username
		}
		comment, err := repo.AddComment(c.Param("id"), by, req.Text)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}

// ListBoardHandler returns the standalone comment board.
func ListBoardHandler(repo *complaints.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		comments, err := repo.ListBoard()
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"comments": comments})
	}
}

// PostBoardHandler appends a board comment for the logged-in user.
func PostBoardHandler(repo *complaints.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Enter comment"})
			return
		}
		comment, err := repo.PostBoard(middleware.CurrentSession(c), req.Text)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}

// ExportCSVHandler streams the complaint collection as a CSV download. An
// empty collection is a 400 with a notice rather than an empty file.
func ExportCSVHandler(repo *complaints.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List()
		if err != nil {
			fail(c, err)
			return
		}
		doc, err := export.ComplaintsCSV(items)
		if err != nil {
			fail(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="complaints.csv"`)
		c.Data(http.StatusOK, "text/csv", doc)
	}
}
