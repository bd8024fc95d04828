// Package identity manages accounts and the active session: registration,
// login, logout, profile updates and password changes.
package identity

import (
	"errors"
	"strings"

	"complaint_tracker/internal/domain"
	"complaint_tracker/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Sentinel errors, translated to HTTP statuses by the API layer.
var (
	ErrMissingField       = errors.New("fill all fields")
	ErrDuplicateUsername  = errors.New("username exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrWrongPassword      = errors.New("current password incorrect")
	ErrPasswordTooShort   = errors.New("new password must be at least 6 chars")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// Manager implements account and session operations over the store.
type Manager struct {
	st *store.Store
}

// NewManager creates an identity manager backed by st.
func NewManager(st *store.Store) *Manager {
	return &Manager{st: st}
}

// Register creates an account and establishes a session for it.
//
// The duplicate check is case-insensitive while every later lookup is
// case-sensitive; the stored data inherits that split, so both sides keep it.
// A requested username of "admin" (any casing) is granted the admin role.
func (m *Manager) Register(username, email, password string) (*domain.User, *domain.Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if username == "" || email == "" || password == "" {
		return nil, nil, ErrMissingField
	}
	users, err := m.st.Users()
	if err != nil {
		return nil, nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return nil, nil, ErrDuplicateUsername
		}
	}
	role := domain.RoleUser
	if strings.EqualFold(username, "admin") {
		role = domain.RoleAdmin
	}
	user := domain.User{
		ID:            uuid.New().String(),
		Username:      username,
		Email:         email,
		Password:      password,
		Role:          role,
		CreatedAt:     domain.NowISO(),
		Settings:      &domain.Settings{NotifyEmail: true, NotifyInApp: true},
		Notifications: []domain.Notification{},
	}
	users = append(users, user)
	if err := m.st.SaveUsers(users); err != nil {
		return nil, nil, err
	}
	sess := &domain.Session{ID: uuid.New().String(), Username: user.Username, Role: user.Role}
	if err := m.st.SaveSession(sess); err != nil {
		return nil, nil, err
	}
	logrus.WithFields(logrus.Fields{
		"username": user.Username,
		"role":     user.Role,
	}).Info("User registered")
	return &user, sess, nil
}

// Login authenticates by exact username and password match and establishes
// a session.
func (m *Manager) Login(username, password string) (*domain.Session, error) {
	users, err := m.st.Users()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username && u.Password == password {
			sess := &domain.Session{ID: uuid.New().String(), Username: u.Username, Role: u.Role}
			if err := m.st.SaveSession(sess); err != nil {
				return nil, err
			}
			logrus.WithField("username", u.Username).Info("User logged in")
			return sess, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Logout clears the active session unconditionally. Idempotent.
func (m *Manager) Logout() error {
	return m.st.ClearSession()
}

// Current returns the persisted session, or nil when nobody is logged in.
func (m *Manager) Current() (*domain.Session, error) {
	return m.st.Session()
}

// UserByName finds a user by exact username match.
func (m *Manager) UserByName(username string) (*domain.User, error) {
	users, err := m.st.Users()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Username    string
	Email       string
	Mobile      string
	Bio         string
	NotifyEmail bool
	NotifyInApp bool
}

// UpdateProfile rewrites the logged-in user's profile. Renaming the identity
// key is allowed when no other user holds the target name (exact match); on
// success the active session is refreshed to the new username.
func (m *Manager) UpdateProfile(upd ProfileUpdate) error {
	sess, err := m.st.Session()
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrNotAuthenticated
	}
	upd.Username = strings.TrimSpace(upd.Username)
	upd.Email = strings.TrimSpace(upd.Email)
	if upd.Username == "" || upd.Email == "" {
		return ErrMissingField
	}
	users, err := m.st.Users()
	if err != nil {
		return err
	}
	me := -1
	for i := range users {
		if users[i].Username == sess.Username {
			me = i
			break
		}
	}
	if me == -1 {
		return ErrUserNotFound
	}
	if upd.Username != users[me].Username {
		for _, u := range users {
			if u.Username == upd.Username {
				return ErrUsernameTaken
			}
		}
	}
	users[me].Username = upd.Username
	users[me].Email = upd.Email
	users[me].Mobile = strings.TrimSpace(upd.Mobile)
	users[me].Bio = strings.TrimSpace(upd.Bio)
	users[me].Settings = &domain.Settings{NotifyEmail: upd.NotifyEmail, NotifyInApp: upd.NotifyInApp}
	if err := m.st.SaveUsers(users); err != nil {
		return err
	}
	sess.Username = upd.Username
	if err := m.st.SaveSession(sess); err != nil {
		return err
	}
	logrus.WithField("username", upd.Username).Info("Profile updated")
	return nil
}

// ChangePassword replaces the logged-in user's password after checking the
// current one, the minimum length, and the confirmation.
func (m *Manager) ChangePassword(current, newPass, confirm string) error {
	sess, err := m.st.Session()
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrNotAuthenticated
	}
	users, err := m.st.Users()
	if err != nil {
		return err
	}
	me := -1
	for i := range users {
		if users[i].Username == sess.Username {
			me = i
			break
		}
	}
	if me == -1 {
		return ErrUserNotFound
	}
	if users[me].Password != current {
		return ErrWrongPassword
	}
	if len(newPass) < 6 {
		return ErrPasswordTooShort
	}
	if newPass != confirm {
		return ErrPasswordMismatch
	}
	users[me].Password = newPass
	if err := m.st.SaveUsers(users); err != nil {
		return err
	}
	logrus.WithField("username", sess.Username).Info("Password changed")
	return nil
}
