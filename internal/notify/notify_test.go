package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"complaint_tracker/internal/domain"
	"complaint_tracker/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMailer records sends; the email channel is fire-and-forget, so tests
// poll it with Eventually.
type fakeMailer struct {
	mu   sync.Mutex
	sent []EmailMessage
}

func (f *fakeMailer) Send(_ context.Context, msg EmailMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeMailer) last() EmailMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

func newTestSink(t *testing.T) (*Sink, *fakeMailer, *store.Store) {
	t.Helper()
	st, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	mailer := &fakeMailer{}
	return NewSink(st, mailer), mailer, st
}

func seedUser(t *testing.T, st *store.Store, username string, settings *domain.Settings, email string) {
	t.Helper()
	users, err := st.Users()
	require.NoError(t, err)
	users = append(users, domain.User{
		ID:            "u-" + username,
		Username:      username,
		Email:         email,
		Settings:      settings,
		Notifications: []domain.Notification{},
	})
	require.NoError(t, st.SaveUsers(users))
}

// TestNotifyAppends verifies an in-app notification lands on the user record
// unread.
func TestNotifyAppends(t *testing.T) {
	sink, _, st := newTestSink(t)
	seedUser(t, st, "raj", &domain.Settings{NotifyEmail: false, NotifyInApp: true}, "raj@example.com")

	require.NoError(t, sink.Notify("raj", "Your report was seen", "c1"))

	notes, err := sink.Notifications("raj")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Your report was seen", notes[0].Title)
	assert.Equal(t, "c1", notes[0].ComplaintID)
	assert.False(t, notes[0].Read)
	assert.NotEmpty(t, notes[0].At)
}

// TestNotifyRespectsOptOut verifies notifyInApp=false drops the notification
// silently.
func TestNotifyRespectsOptOut(t *testing.T) {
	sink, _, st := newTestSink(t)
	seedUser(t, st, "raj", &domain.Settings{NotifyEmail: true, NotifyInApp: false}, "raj@example.com")

	require.NoError(t, sink.Notify("raj", "title", "c1"))

	notes, err := sink.Notifications("raj")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

// TestNotifyMissingUser verifies notifying an unknown user is a no-op, not
// an error. Anonymous complaints hit this path on every status change.
func TestNotifyMissingUser(t *testing.T) {
	sink, _, _ := newTestSink(t)
	require.NoError(t, sink.Notify("anonymous", "title", "c1"))
}

// TestNotifyStatusChangeEmail verifies the email channel fires for opted-in
// users with an address and stays quiet otherwise.
func TestNotifyStatusChangeEmail(t *testing.T) {
	sink, mailer, st := newTestSink(t)
	seedUser(t, st, "raj", &domain.Settings{NotifyEmail: true, NotifyInApp: true}, "raj@example.com")
	seedUser(t, st, "mia", &domain.Settings{NotifyEmail: false, NotifyInApp: true}, "mia@example.com")
	seedUser(t, st, "noaddr", &domain.Settings{NotifyEmail: true, NotifyInApp: true}, "")

	complaint := domain.Complaint{ID: "c1", Title: "Pothole", Description: "Large pothole.", CreatedBy: "raj"}
	sink.NotifyStatusChange(complaint, domain.StatusResolved)

	assert.Eventually(t, func() bool { return mailer.count() == 1 }, time.Second, 10*time.Millisecond)
	msg := mailer.last()
	assert.Equal(t, "raj@example.com", msg.Email)
	assert.Equal(t, domain.StatusResolved, msg.Status)
	assert.Equal(t, "Large pothole.", msg.Description)

	notes, err := sink.Notifications("raj")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, `Your report "Pothole" marked Resolved`, notes[0].Title)

	// Opted-out and address-less users never hit the mailer.
	sink.NotifyStatusChange(domain.Complaint{ID: "c2", Title: "t", CreatedBy: "mia"}, domain.StatusResolved)
	sink.NotifyStatusChange(domain.Complaint{ID: "c3", Title: "t", CreatedBy: "noaddr"}, domain.StatusResolved)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, mailer.count())
}

// TestNotifyStatusChangeNilMailer verifies a sink without an email channel
// still appends the in-app notification.
func TestNotifyStatusChangeNilMailer(t *testing.T) {
	st, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	sink := NewSink(st, nil)
	seedUser(t, st, "raj", &domain.Settings{NotifyEmail: true, NotifyInApp: true}, "raj@example.com")

	sink.NotifyStatusChange(domain.Complaint{ID: "c1", Title: "Pothole", CreatedBy: "raj"}, domain.StatusInProgress)

	notes, err := sink.Notifications("raj")
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

// TestMarkAllRead verifies every notification flips to read and reruns are
// no-ops.
func TestMarkAllRead(t *testing.T) {
	sink, _, st := newTestSink(t)
	seedUser(t, st, "raj", &domain.Settings{NotifyEmail: false, NotifyInApp: true}, "raj@example.com")
	require.NoError(t, sink.Notify("raj", "one", "c1"))
	require.NoError(t, sink.Notify("raj", "two", "c2"))

	require.NoError(t, sink.MarkAllRead("raj"))

	notes, err := sink.Notifications("raj")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.True(t, notes[0].Read)
	assert.True(t, notes[1].Read)

	require.NoError(t, sink.MarkAllRead("raj"))
	require.NoError(t, sink.MarkAllRead("nobody"))
}
