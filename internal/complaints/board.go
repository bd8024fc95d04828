package complaints

import (
	"complaint_tracker/internal/domain"

	"github.com/google/uuid"
)

// PostBoard appends a comment to the standalone community board. Unlike
// complaint threads, board posting requires a logged-in user.
func (r *Repository) PostBoard(sess *domain.Session, text string) (*domain.BoardComment, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if sess == nil {
		return nil, ErrLoginRequired
	}
	comments, err := r.st.BoardComments()
	if err != nil {
		return nil, err
	}
	comment := domain.BoardComment{
		ID:        uuid.New().String(),
		User:      sess.Username,
		Text:      text,
		CreatedAt: domain.NowISO(),
	}
	comments = append(comments, comment)
	if err := r.st.SaveBoardComments(comments); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListBoard returns the board in insertion order; callers render newest
// first.
func (r *Repository) ListBoard() ([]domain.BoardComment, error) {
	return r.st.BoardComments()
}
