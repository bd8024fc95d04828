package export

import (
	"strings"
	"testing"

	"complaint_tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComplaintsCSV verifies the fixed header, quoting of every field, quote
// doubling, and coordinate formatting.
func TestComplaintsCSV(t *testing.T) {
	lat, lng := 28.7045, 77.103
	doc, err := ComplaintsCSV([]domain.Complaint{{
		ID:           "c1",
		Title:        `Pothole near "Gate 2"`,
		Category:     "Roads",
		Status:       domain.StatusReported,
		CreatedBy:    "raj",
		CreatedAt:    "2026-01-05T10:00:00Z",
		Lat:          &lat,
		Lng:          &lng,
		LocationText: "Gate 2, Sector 9",
		Upvotes:      3,
	}})
	require.NoError(t, err)

	lines := strings.Split(string(doc), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,title,category,status,createdBy,createdAt,lat,lng,locationText,upvotes", lines[0])
	assert.Equal(t,
		`"c1","Pothole near ""Gate 2""","Roads","Reported","raj","2026-01-05T10:00:00Z","28.7045","77.103","Gate 2, Sector 9","3"`,
		lines[1])
}

// TestComplaintsCSVMissingCoordinates verifies nil coordinates export as
// empty quoted fields.
func TestComplaintsCSVMissingCoordinates(t *testing.T) {
	doc, err := ComplaintsCSV([]domain.Complaint{{ID: "c1", Title: "t", Status: domain.StatusReported}})
	require.NoError(t, err)
	assert.Contains(t, string(doc), `"","",""`)
}

// TestComplaintsCSVEmpty verifies an empty collection refuses to export.
func TestComplaintsCSVEmpty(t *testing.T) {
	_, err := ComplaintsCSV(nil)
	assert.ErrorIs(t, err, ErrNoComplaints)
}
