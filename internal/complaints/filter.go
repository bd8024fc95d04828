package complaints

import "complaint_tracker/internal/domain"

// FilterMode selects which admin dashboard bucket drives the list view.
type FilterMode string

const (
	FilterAll      FilterMode = "ALL"
	FilterStatus   FilterMode = "STATUS"
	FilterCategory FilterMode = "CATEGORY"
	// FilterUsers yields no complaints: the users card redirects intent to a
	// user-count view, it is not a complaint filter.
	FilterUsers FilterMode = "USERS"
)

// Filter is a projection over List derived from a dashboard card click.
type Filter struct {
	Mode  FilterMode
	Value string
}

// Filtered applies f over the full collection. Unknown modes pass through
// like ALL, matching the dashboard's default card.
func (r *Repository) Filtered(f Filter) ([]domain.Complaint, error) {
	all, err := r.st.Complaints()
	if err != nil {
		return nil, err
	}
	switch f.Mode {
	case FilterStatus:
		if f.Value == "" {
			return all, nil
		}
		out := []domain.Complaint{}
		for _, c := range all {
			if c.Status == f.Value {
				out = append(out, c)
			}
		}
		return out, nil
	case FilterCategory:
		if f.Value == "" {
			return all, nil
		}
		out := []domain.Complaint{}
		for _, c := range all {
			if c.Category == f.Value {
				out = append(out, c)
			}
		}
		return out, nil
	case FilterUsers:
		return []domain.Complaint{}, nil
	default:
		return all, nil
	}
}
