// Package complaints implements the complaint workflow: submission, listing,
// upvotes, status changes with an append-only history, embedded comment
// threads and deletion.
package complaints

import (
	"errors"

	"complaint_tracker/internal/domain"
	"complaint_tracker/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Sentinel errors, translated to HTTP statuses by the API layer.
var (
	ErrNotFound      = errors.New("complaint not found")
	ErrMissingField  = errors.New("fill title & description")
	ErrEmptyText     = errors.New("comment text is empty")
	ErrLoginRequired = errors.New("login required")
)

// StatusNotifier is told about status changes so the reporter can be
// notified. Implemented by notify.Sink; tests supply fakes.
type StatusNotifier interface {
	NotifyStatusChange(c domain.Complaint, status string)
}

// Repository implements complaint operations over the store.
type Repository struct {
	st       *store.Store
	notifier StatusNotifier
}

// NewRepository creates a complaint repository. notifier may be nil.
func NewRepository(st *store.Store, notifier StatusNotifier) *Repository {
	return &Repository{st: st, notifier: notifier}
}

// Submission carries the fields of a new complaint.
type Submission struct {
	Title        string
	Description  string
	Category     string
	LocationText string
	Lat          *float64
	Lng          *float64
	Photos       []string
	Anonymous    bool
}

// Submit files a new complaint at the front of the collection, so stored
// order is most-recent-first. The reporter is "anonymous" when the flag is
// set or no session is active. History is seeded with the Reported entry.
func (r *Repository) Submit(sub Submission, sess *domain.Session) (*domain.Complaint, error) {
	if sub.Title == "" || sub.Description == "" {
		return nil, ErrMissingField
	}
	createdBy := domain.Anonymous
	if !sub.Anonymous && sess != nil {
		createdBy = sess.Username
	}
	now := domain.NowISO()
	photos := sub.Photos
	if photos == nil {
		photos = []string{}
	}
	c := domain.Complaint{
		ID:           uuid.New().String(),
		Title:        sub.Title,
		Description:  sub.Description,
		Category:     sub.Category,
		LocationText: sub.LocationText,
		Lat:          sub.Lat,
		Lng:          sub.Lng,
		Status:       domain.StatusReported,
		Upvotes:      0,
		CreatedAt:    now,
		CreatedBy:    createdBy,
		Photos:       photos,
		Comments:     []domain.Comment{},
		History: []domain.HistoryEntry{
			{Status: domain.StatusReported, By: createdBy, At: now},
		},
	}
	all, err := r.st.Complaints()
	if err != nil {
		return nil, err
	}
	all = append([]domain.Complaint{c}, all...)
	if err := r.st.SaveComplaints(all); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"id":       c.ID,
		"category": c.Category,
		"by":       createdBy,
	}).Info("Complaint submitted")
	return &c, nil
}

// List returns every complaint in collection order (most-recent-first).
func (r *Repository) List() ([]domain.Complaint, error) {
	return r.st.Complaints()
}

// ListByUser returns the complaints whose reporter matches username exactly.
func (r *Repository) ListByUser(username string) ([]domain.Complaint, error) {
	all, err := r.st.Complaints()
	if err != nil {
		return nil, err
	}
	mine := []domain.Complaint{}
	for _, c := range all {
		if c.CreatedBy == username {
			mine = append(mine, c)
		}
	}
	return mine, nil
}

// Get returns the complaint with the given id.
func (r *Repository) Get(id string) (*domain.Complaint, error) {
	all, err := r.st.Complaints()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

// Upvote increments the complaint's counter and returns the new value.
// There is no per-user tracking; repeated calls keep counting.
func (r *Repository) Upvote(id string) (int, error) {
	all, err := r.st.Complaints()
	if err != nil {
		return 0, err
	}
	for i := range all {
		if all[i].ID == id {
			all[i].Upvotes++
			if err := r.st.SaveComplaints(all); err != nil {
				return 0, err
			}
			return all[i].Upvotes, nil
		}
	}
	return 0, ErrNotFound
}

// SetStatus overwrites the complaint's status and appends one history entry
// per call, even when the status is unchanged; skipping no-op transitions is
// a caller-side optimization, not enforced here. The reporter is notified
// afterwards.
func (r *Repository) SetStatus(id, status, actor string) error {
	all, err := r.st.Complaints()
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		all[i].Status = status
		all[i].History = append(all[i].History, domain.HistoryEntry{
			Status: status,
			By:     actor,
			At:     domain.NowISO(),
		})
		if err := r.st.SaveComplaints(all); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"id":     id,
			"status": status,
			"by":     actor,
		}).Info("Complaint status updated")
		if r.notifier != nil {
			r.notifier.NotifyStatusChange(all[i], status)
		}
		return nil
	}
	return ErrNotFound
}

// AddComment appends a comment to the complaint's embedded thread.
func (r *Repository) AddComment(id, by, text string) (*domain.Comment, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if by == "" {
		by = domain.Anonymous
	}
	all, err := r.st.Complaints()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		comment := domain.Comment{
			ID:   uuid.New().String(),
			By:   by,
			Text: text,
			At:   domain.NowISO(),
		}
		all[i].Comments = append(all[i].Comments, comment)
		if err := r.st.SaveComplaints(all); err != nil {
			return nil, err
		}
		return &comment, nil
	}
	return nil, ErrNotFound
}

// Delete removes the complaint permanently. Comments are embedded, so no
// cascade is needed.
func (r *Repository) Delete(id string) error {
	all, err := r.st.Complaints()
	if err != nil {
		return err
	}
	kept := all[:0]
	found := false
	for _, c := range all {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return ErrNotFound
	}
	if err := r.st.SaveComplaints(kept); err != nil {
		return err
	}
	logrus.WithField("id", id).Info("Complaint deleted")
	return nil
}
