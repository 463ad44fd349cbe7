package repository

import (
	"time"

	"github.com/helixflow/helixflow-api/internal/models"
)

// SeedVenues is the static campus venue reference set.
func SeedVenues() []models.Venue {
	return []models.Venue{
		{
			ID:       "v1",
			Name:     "Grand Auditorium",
			Capacity: 500,
			Features: []string{"Projector", "Sound System", "Stage", "AC"},
			Image:    "https://picsum.photos/800/400?random=1",
		},
		{
			ID:       "v2",
			Name:     "Conference Hall A",
			Capacity: 100,
			Features: []string{"Projector", "Whiteboard", "Video Conf"},
			Image:    "https://picsum.photos/800/400?random=2",
		},
		{
			ID:       "v3",
			Name:     "Innovation Lab",
			Capacity: 50,
			Features: []string{"Computers", "3D Printers", "Smartboard"},
			Image:    "https://picsum.photos/800/400?random=3",
		},
		{
			ID:       "v4",
			Name:     "Open Air Amphitheater",
			Capacity: 1000,
			Features: []string{"Outdoor", "Stage", "Lighting"},
			Image:    "https://picsum.photos/800/400?random=4",
		},
	}
}

// SeedEvents returns the demo events relative to the provided day.
func SeedEvents(now time.Time) []models.Event {
	today := now.UTC().Format(models.DateLayout)
	tomorrow := now.UTC().Add(24 * time.Hour).Format(models.DateLayout)
	return []models.Event{
		{
			ID:          "e1",
			Title:       "Annual Tech Symposium",
			Organizer:   "John Doe",
			Department:  "Computer Science",
			VenueID:     "v1",
			Date:        today,
			StartTime:   "09:00",
			EndTime:     "17:00",
			Description: "A gathering of tech enthusiasts.",
			Status:      models.StatusApproved,
			Report: &models.EventReport{
				Attendance:  450,
				Summary:     "Great turnout, minor technical glitch with sound.",
				Photos:      []string{},
				SubmittedAt: now.UTC(),
				Status:      models.ReportApproved,
			},
		},
		{
			ID:          "e2",
			Title:       "Faculty Meeting",
			Organizer:   "Dr. Smith",
			Department:  "Administration",
			VenueID:     "v2",
			Date:        tomorrow,
			StartTime:   "10:00",
			EndTime:     "12:00",
			Description: "Monthly review.",
			Status:      models.StatusPendingHOD,
		},
	}
}

// SeedNotifications returns the welcome notification for the default
// session identity.
func SeedNotifications(now time.Time, userID string) []models.Notification {
	return []models.Notification{
		{
			ID:        "n1",
			UserID:    userID,
			Message:   "Welcome to HelixFlow! Check your dashboard for updates.",
			Type:      models.NotificationInfo,
			Kind:      models.KindGeneral,
			Read:      false,
			CreatedAt: now.UTC(),
		},
	}
}
