package store

import "complaint_tracker/internal/domain"

// Users loads the user collection, applying per-record defaulting rules.
func (s *Store) Users() ([]domain.User, error) {
	users := []domain.User{}
	if err := s.Load(UsersCollection, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Normalize()
	}
	return users, nil
}

// SaveUsers replaces the user collection.
func (s *Store) SaveUsers(users []domain.User) error {
	return s.Save(UsersCollection, users)
}

// Complaints loads the complaint collection in stored (most-recent-first)
// order, applying per-record defaulting rules.
func (s *Store) Complaints() ([]domain.Complaint, error) {
	complaints := []domain.Complaint{}
	if err := s.Load(ComplaintsCollection, &complaints); err != nil {
		return nil, err
	}
	for i := range complaints {
		complaints[i].Normalize()
	}
	return complaints, nil
}

// SaveComplaints replaces the complaint collection.
func (s *Store) SaveComplaints(complaints []domain.Complaint) error {
	return s.Save(ComplaintsCollection, complaints)
}

// BoardComments loads the standalone comment board in insertion order.
func (s *Store) BoardComments() ([]domain.BoardComment, error) {
	comments := []domain.BoardComment{}
	if err := s.Load(CommentsCollection, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// SaveBoardComments replaces the comment board collection.
func (s *Store) SaveBoardComments(comments []domain.BoardComment) error {
	return s.Save(CommentsCollection, comments)
}

// Session returns the persisted session, or nil when nobody is logged in.
func (s *Store) Session() (*domain.Session, error) {
	var sess domain.Session
	if err := s.Load(AuthCollection, &sess); err != nil {
		return nil, err
	}
	if sess.Username == "" {
		return nil, nil
	}
	return &sess, nil
}

// SaveSession persists the active session.
func (s *Store) SaveSession(sess *domain.Session) error {
	return s.Save(AuthCollection, sess)
}

// ClearSession removes the active session. Idempotent.
func (s *Store) ClearSession() error {
	return s.Drop(AuthCollection)
}
