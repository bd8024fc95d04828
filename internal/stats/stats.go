// Package stats computes the admin dashboard aggregates. Everything is
// recomputed from collection snapshots on each request; nothing is cached.
package stats

import (
	"sort"

	"complaint_tracker/internal/domain"
	"complaint_tracker/internal/store"
)

// CountsByStatus tallies complaints per status.
func CountsByStatus(complaints []domain.Complaint) map[string]int {
	counts := map[string]int{}
	for _, c := range complaints {
		counts[c.Status]++
	}
	return counts
}

// CountsByCategory tallies complaints per category tag.
func CountsByCategory(complaints []domain.Complaint) map[string]int {
	counts := map[string]int{}
	for _, c := range complaints {
		counts[c.Category]++
	}
	return counts
}

// LeaderboardEntry is one row of the reports-per-user ranking.
type LeaderboardEntry struct {
	Username string `json:"username"`
	Reports  int    `json:"reports"`
}

// Leaderboard ranks registered users by how many complaints they filed,
// most first. Ties order by username for a stable listing.
func Leaderboard(users []domain.User, complaints []domain.Complaint) []LeaderboardEntry {
	perUser := map[string]int{}
	for _, c := range complaints {
		perUser[c.CreatedBy]++
	}
	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, LeaderboardEntry{Username: u.Username, Reports: perUser[u.Username]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Reports != entries[j].Reports {
			return entries[i].Reports > entries[j].Reports
		}
		return entries[i].Username < entries[j].Username
	})
	return entries
}

// Service answers dashboard queries that need the store.
type Service struct {
	st *store.Store
}

// NewService creates a stats service over st.
func NewService(st *store.Store) *Service {
	return &Service{st: st}
}

// UserCount returns the number of registered users.
func (s *Service) UserCount() (int, error) {
	users, err := s.st.Users()
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// Ranking loads both collections and builds the leaderboard.
func (s *Service) Ranking() ([]LeaderboardEntry, error) {
	users, err := s.st.Users()
	if err != nil {
		return nil, err
	}
	complaints, err := s.st.Complaints()
	if err != nil {
		return nil, err
	}
	return Leaderboard(users, complaints), nil
}
