package booking

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"brandichat/app/config"

	"github.com/google/uuid"
	"github.com/samber/do"
)

type Request struct {
	Name          string `json:"name" validate:"required,min=2"`
	Email         string `json:"email" validate:"required,email,max=254"`
	PreferredTime string `json:"preferredTime"`
	Message       string `json:"message"`
	Phone         string `json:"phone"`
}

type Confirmation struct {
	Success      bool   `json:"success"`
	BookingURL   string `json:"bookingUrl"`
	Message      string `json:"message"`
	BookingID    string `json:"bookingId"`
	Instructions string `json:"instructions"`
}

type Availability struct {
	NextAvailable time.Time           `json:"nextAvailable"`
	Timezone      string              `json:"timezone"`
	BusinessHours map[string][]string `json:"businessHours"`
	TypicalSlots  []string            `json:"typicalSlots"`
}

var emailMask = regexp.MustCompile(`(.{2}).*(@.*)`)

// Service hands out the fixed external scheduling URL; actual calendar slots
// live on the calendar provider's side.
type Service struct {
	bookingURL string
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Service{
		bookingURL: cfg.Booking.URL,
	}, nil
}

func (s *Service) ScheduleConsultation(req Request) *Confirmation {
	slog.Info("Booking request",
		"name", req.Name,
		"email", emailMask.ReplaceAllString(req.Email, "$1***$2"),
		"source", "chatbot",
	)

	return &Confirmation{
		Success:      true,
		BookingURL:   s.bookingURL,
		Message:      fmt.Sprintf("Thanks %s! Click the link below to choose your preferred time slot.", req.Name),
		BookingID:    newBookingID(),
		Instructions: "Select a time that works best for you. We'll send a confirmation email with meeting details.",
	}
}

func (s *Service) GetAvailability() *Availability {
	return &Availability{
		NextAvailable: time.Now().Add(24 * time.Hour),
		Timezone:      "America/Los_Angeles",
		BusinessHours: map[string][]string{
			"monday":    {"9:00 AM", "5:00 PM"},
			"tuesday":   {"9:00 AM", "5:00 PM"},
			"wednesday": {"9:00 AM", "5:00 PM"},
			"thursday":  {"9:00 AM", "5:00 PM"},
			"friday":    {"9:00 AM", "5:00 PM"},
		},
		TypicalSlots: []string{
			"9:00 AM", "10:00 AM", "11:00 AM",
			"2:00 PM", "3:00 PM", "4:00 PM",
		},
	}
}

func newBookingID() string {
	return fmt.Sprintf("booking_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
