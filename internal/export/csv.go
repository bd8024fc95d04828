// Package export renders the complaint collection as a downloadable CSV
// document.
package export

import (
	"errors"
	"strconv"
	"strings"

	"complaint_tracker/internal/domain"
)

// ErrNoComplaints signals that there is nothing to export; callers show a
// notice instead of producing a file.
var ErrNoComplaints = errors.New("no complaints")

// Columns is the fixed export header. The stored format depends on this
// exact order.
var Columns = []string{
	"id", "title", "category", "status", "createdBy",
	"createdAt", "lat", "lng", "locationText", "upvotes",
}

// Every field is double-quote enclosed with internal quotes doubled, which
// the stock csv writer only does on demand, so quoting is done by hand.
func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func coord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// ComplaintsCSV renders the collection with the fixed header, one row per
// complaint, newline-separated.
func ComplaintsCSV(complaints []domain.Complaint) ([]byte, error) {
	if len(complaints) == 0 {
		return nil, ErrNoComplaints
	}
	var b strings.Builder
	b.WriteString(strings.Join(Columns, ","))
	for _, c := range complaints {
		fields := []string{
			c.ID, c.Title, c.Category, c.Status, c.CreatedBy,
			c.CreatedAt, coord(c.Lat), coord(c.Lng), c.LocationText,
			strconv.Itoa(c.Upvotes),
		}
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = quote(f)
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(quoted, ","))
	}
	return []byte(b.String()), nil
}
