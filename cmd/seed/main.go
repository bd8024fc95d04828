package main

import (
	"complaint_tracker/internal/config" // Custom import path (Config)
	"complaint_tracker/internal/domain" // Custom import path (Domain records)
	"complaint_tracker/internal/store"  // Custom import path (Badger store)

	"github.com/google/uuid"     // UUID generation
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for seeding demo data. Each collection is seeded only
// when absent, so reruns never clobber live data.
func main() {
	cfg := config.LoadConfig() // Load configuration

	st, err := store.Open(store.Config{Path: cfg.DataDir, SyncWrites: true})
	if err != nil {
		logrus.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	if err := seedUsers(st); err != nil {
		logrus.Fatalf("failed to seed users: %v", err)
	}
	if err := seedComplaints(st); err != nil {
		logrus.Fatalf("failed to seed complaints: %v", err)
	}
	logrus.Info("Seed complete")
}

// seedUsers writes the demo accounts unless users already exist.
func seedUsers(st *store.Store) error {
	users, err := st.Users()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		logrus.Info("Users present, skipping")
		return nil
	}
	now := domain.NowISO()
	users = []domain.User{
		{
			ID:            uuid.NewString(),
			Username:      "admin",
			Email:         "admin@example.com",
			Password:      "admin",
			Role:          domain.RoleAdmin,
			CreatedAt:     now,
			Settings:      &domain.Settings{NotifyEmail: true, NotifyInApp: true},
			Notifications: []domain.Notification{},
		},
		{
			ID:            uuid.NewString(),
			Username:      "raj",
			Email:         "raj@example.com",
			Password:      "1234512345",
			Role:          domain.RoleUser,
			CreatedAt:     now,
			Settings:      &domain.Settings{NotifyEmail: true, NotifyInApp: true},
			Notifications: []domain.Notification{},
		},
	}
	return st.SaveUsers(users)
}

// seedComplaints writes one demo pothole report unless complaints exist.
func seedComplaints(st *store.Store) error {
	complaints, err := st.Complaints()
	if err != nil {
		return err
	}
	if len(complaints) > 0 {
		logrus.Info("Complaints present, skipping")
		return nil
	}
	now := domain.NowISO()
	lat, lng := 28.7045, 77.1030
	complaints = []domain.Complaint{
		{
			ID:           uuid.NewString(),
			Title:        "Pothole near Gate 2",
			Description:  "Large pothole causing traffic, needs urgent repair.",
			Category:     "Roads",
			LocationText: "Gate 2, Sector 9",
			Lat:          &lat,
			Lng:          &lng,
			Status:       domain.StatusReported,
			CreatedAt:    now,
			CreatedBy:    "raj",
			Photos:       []string{},
			Comments:     []domain.Comment{},
			History: []domain.HistoryEntry{
				{Status: domain.StatusReported, By: "raj", At: now},
			},
		},
	}
	return st.SaveComplaints(complaints)
}
