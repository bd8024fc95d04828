package domain

import "encoding/json"

// Roles assigned at registration.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Anonymous is the reporter name recorded when no session is active or the
// submitter asked not to be identified.
const Anonymous = "anonymous"

// Settings holds a user's notification preferences.
type Settings struct {
	NotifyEmail bool `json:"notifyEmail"` // external email on status change
	NotifyInApp bool `json:"notifyInApp"` // in-app notification on status change
}

// Notification is an in-app notice appended to a user when the status of one
// of their complaints changes.
type Notification struct {
	Title       string `json:"title"`
	At          string `json:"at"`
	Read        bool   `json:"read"`
	ComplaintID string `json:"complaintId"`
}

// User is a registered account. Passwords are stored in plain text; the
// stored format pins this demo behavior down, it is not an oversight to
// repair.
type User struct {
	ID            string         `json:"id"`
	Username      string         `json:"username"`
	Email         string         `json:"email"`
	Password      string         `json:"password"`
	Mobile        string         `json:"mobile"`
	Role          string         `json:"role"`
	CreatedAt     string         `json:"createdAt"`
	Bio           string         `json:"bio"`
	Settings      *Settings      `json:"settings,omitempty"`
	Notifications []Notification `json:"notifications"`

	// Extra keeps fields written by other record versions.
	Extra map[string]json.RawMessage `json:"-"`
}

// Normalize applies defaulting rules for optional fields read from storage:
// a missing settings object means both notification channels are on.
func (u *User) Normalize() {
	if u.Settings == nil {
		u.Settings = &Settings{NotifyEmail: true, NotifyInApp: true}
	}
	if u.Notifications == nil {
		u.Notifications = []Notification{}
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
}

func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	var a alias
	if err := unmarshalWithExtra(data, &a, &a.Extra); err != nil {
		return err
	}
	*u = User(a)
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	return marshalWithExtra(alias(u), u.Extra)
}
