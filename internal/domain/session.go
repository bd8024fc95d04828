package domain

// Session is the thin projection of a User that identifies who is logged in.
// It is persisted separately from the user record so it survives user-list
// rewrites, and it is refreshed in place when the user is renamed.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// BoardComment is a standalone community comment, kept in its own collection
// apart from the per-complaint comment threads.
type BoardComment struct {
	ID        string `json:"id"`
	User      string `json:"user"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}
