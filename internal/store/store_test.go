package store

import (
	"testing"

	"complaint_tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

// TestOpenRequiresPath verifies a persistent store refuses an empty path.
func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)
}

// TestMissingCollectionIsEmpty verifies reads before any write return the
// empty collection rather than an error.
func TestMissingCollectionIsEmpty(t *testing.T) {
	st := newTestStore(t)

	users, err := st.Users()
	require.NoError(t, err)
	assert.Empty(t, users)

	complaints, err := st.Complaints()
	require.NoError(t, err)
	assert.Empty(t, complaints)

	sess, err := st.Session()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

// TestUsersRoundTrip verifies users survive a save/load cycle with
// defaulting applied.
func TestUsersRoundTrip(t *testing.T) {
	st := newTestStore(t)

	err := st.SaveUsers([]domain.User{{ID: "u1", Username: "raj", Password: "1234512345"}})
	require.NoError(t, err)

	users, err := st.Users()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "raj", users[0].Username)
	// Normalize fills role and settings for records written without them.
	assert.Equal(t, domain.RoleUser, users[0].Role)
	require.NotNil(t, users[0].Settings)
	assert.True(t, users[0].Settings.NotifyEmail)
	assert.True(t, users[0].Settings.NotifyInApp)
	assert.NotNil(t, users[0].Notifications)
}

// TestCorruptPayloadReadsEmpty verifies a payload with the wrong shape
// degrades to the empty collection instead of erroring.
func TestCorruptPayloadReadsEmpty(t *testing.T) {
	st := newTestStore(t)

	// A JSON string where an array is expected.
	require.NoError(t, st.Save(UsersCollection, "not-an-array"))

	users, err := st.Users()
	require.NoError(t, err)
	assert.Empty(t, users)
}

// TestUnknownFieldsSurviveRewrite verifies fields written by other record
// versions are carried through a load/save cycle untouched.
func TestUnknownFieldsSurviveRewrite(t *testing.T) {
	st := newTestStore(t)

	raw := []map[string]any{{
		"id":       "u1",
		"username": "raj",
		"password": "1234512345",
		"badges":   []string{"first-report"},
	}}
	require.NoError(t, st.Save(UsersCollection, raw))

	users, err := st.Users()
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.NoError(t, st.SaveUsers(users))

	var rewritten []map[string]any
	require.NoError(t, st.Load(UsersCollection, &rewritten))
	require.Len(t, rewritten, 1)
	assert.Equal(t, "raj", rewritten[0]["username"])
	assert.Equal(t, []any{"first-report"}, rewritten[0]["badges"])
}

// TestSessionLifecycle verifies the single-session save/load/clear cycle.
func TestSessionLifecycle(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.SaveSession(&domain.Session{ID: "s1", Username: "raj", Role: domain.RoleUser}))

	sess, err := st.Session()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "s1", sess.ID)

	require.NoError(t, st.ClearSession())
	require.NoError(t, st.ClearSession()) // idempotent

	sess, err = st.Session()
	require.NoError(t, err)
	assert.Nil(t, sess)
}
