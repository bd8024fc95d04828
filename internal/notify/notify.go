// Package notify appends in-app notifications to user records and dispatches
// fire-and-forget status emails through an external service.
package notify

import (
	"context"
	"fmt"
	"time"

	"complaint_tracker/internal/domain"
	"complaint_tracker/internal/store"

	"github.com/sirupsen/logrus"
)

// Mailer sends a status-change email through an external provider.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage is the payload handed to the email provider.
type EmailMessage struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Sink writes notifications. A nil mailer disables the email channel.
type Sink struct {
	st     *store.Store
	mailer Mailer
}

// NewSink creates a notification sink over st.
func NewSink(st *store.Store, mailer Mailer) *Sink {
	return &Sink{st: st, mailer: mailer}
}

// Notify appends an in-app notification to username's record. It is a no-op
// when the user does not exist or has in-app notifications turned off; the
// referenced complaint is a soft reference and is not checked.
func (s *Sink) Notify(username, title, complaintID string) error {
	users, err := s.st.Users()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Username != username {
			continue
		}
		if users[i].Settings == nil || !users[i].Settings.NotifyInApp {
			return nil
		}
		users[i].Notifications = append(users[i].Notifications, domain.Notification{
			Title:       title,
			At:          domain.NowISO(),
			Read:        false,
			ComplaintID: complaintID,
		})
		return s.st.SaveUsers(users)
	}
	return nil
}

// NotifyStatusChange fans a status change out to the reporter: an in-app
// notification when notifyInApp is set, and a fire-and-forget email when
// notifyEmail is set. Email failures are logged, never surfaced.
func (s *Sink) NotifyStatusChange(c domain.Complaint, status string) {
	title := fmt.Sprintf("Your report %q marked %s", c.Title, status)
	if err := s.Notify(c.CreatedBy, title, c.ID); err != nil {
		logrus.WithFields(logrus.Fields{
			"username":  c.CreatedBy,
			"complaint": c.ID,
			"error":     err.Error(),
		}).Error("Failed to append notification")
	}
	if s.mailer == nil {
		return
	}
	users, err := s.st.Users()
	if err != nil {
		return
	}
	for _, u := range users {
		if u.Username != c.CreatedBy {
			continue
		}
		if u.Settings == nil || !u.Settings.NotifyEmail || u.Email == "" {
			return
		}
		msg := EmailMessage{
			Username:    u.Username,
			Email:       u.Email,
			Description: c.Description,
			Status:      status,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.mailer.Send(ctx, msg); err != nil {
				logrus.WithFields(logrus.Fields{
					"username": msg.Username,
					"error":    err.Error(),
				}).Error("Status email failed")
			}
		}()
		return
	}
}

// Notifications returns username's notification sequence, oldest first.
func (s *Sink) Notifications(username string) ([]domain.Notification, error) {
	users, err := s.st.Users()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return u.Notifications, nil
		}
	}
	return []domain.Notification{}, nil
}

// MarkAllRead flips every notification on username's record to read.
func (s *Sink) MarkAllRead(username string) error {
	users, err := s.st.Users()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Username != username {
			continue
		}
		changed := false
		for j := range users[i].Notifications {
			if !users[i].Notifications[j].Read {
				users[i].Notifications[j].Read = true
				changed = true
			}
		}
		if !changed {
			return nil
		}
		return s.st.SaveUsers(users)
	}
	return nil
}
