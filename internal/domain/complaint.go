package domain

import "encoding/json"

// Complaint statuses. The progression is advisory only: any transition is
// allowed and the history records whatever was set.
const (
	StatusReported   = "Reported"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// Statuses lists the known statuses in display order.
var Statuses = []string{StatusReported, StatusInProgress, StatusResolved}

// HistoryEntry is one append-only record of a status change.
type HistoryEntry struct {
	Status string `json:"status"`
	By     string `json:"by"`
	At     string `json:"at"`
}

// Comment is attached to a single complaint.
type Comment struct {
	ID   string `json:"id"`
	By   string `json:"by"`
	Text string `json:"text"`
	At   string `json:"at"`
}

// Complaint is a filed report. CreatedBy is a soft reference to a username
// (or "anonymous"); nothing enforces that the user still exists.
type Complaint struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	LocationText string         `json:"locationText"`
	Lat          *float64       `json:"lat"`
	Lng          *float64       `json:"lng"`
	Status       string         `json:"status"`
	Upvotes      int            `json:"upvotes"`
	CreatedAt    string         `json:"createdAt"`
	CreatedBy    string         `json:"createdBy"`
	Photos       []string       `json:"photos"`
	Comments     []Comment      `json:"comments"`
	History      []HistoryEntry `json:"history"`

	// Extra keeps fields written by other record versions.
	Extra map[string]json.RawMessage `json:"-"`
}

// Normalize applies defaulting rules for optional fields read from storage.
func (c *Complaint) Normalize() {
	if c.Status == "" {
		c.Status = StatusReported
	}
	if c.Photos == nil {
		c.Photos = []string{}
	}
	if c.Comments == nil {
		c.Comments = []Comment{}
	}
	if c.History == nil {
		c.History = []HistoryEntry{}
	}
}

func (c *Complaint) UnmarshalJSON(data []byte) error {
	type alias Complaint
	var a alias
	if err := unmarshalWithExtra(data, &a, &a.Extra); err != nil {
		return err
	}
	*c = Complaint(a)
	return nil
}

func (c Complaint) MarshalJSON() ([]byte, error) {
	type alias Complaint
	return marshalWithExtra(alias(c), c.Extra)
}
