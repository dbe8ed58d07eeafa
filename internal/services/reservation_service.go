package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pawmart/internal/domain"
	applog "pawmart/internal/log"
	"pawmart/internal/mail"
	"pawmart/internal/repos"
)

// ReservationService owns the admin status workflow over appointment
// reservations. Notifications fire only when a write actually changes
// the status value, and never affect the reported outcome.
type ReservationService struct {
	Repo *repos.ReservationRepo
	Mail mail.Notifier
}

func NewReservationService(repo *repos.ReservationRepo, notifier mail.Notifier) *ReservationService {
	return &ReservationService{Repo: repo, Mail: notifier}
}

// ReservationUpdate is a partial admin write: nil means "leave as is".
type ReservationUpdate struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"adminNotes"`
}

type ReservationInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Date        string `json:"date"`
	Species     string `json:"species"`
	Breed       string `json:"breed"`
	Reason      string `json:"reason"`
	SpecialNote string `json:"specialNote"`
}

// Create books a new appointment in the pending state. No notification
// fires here; emails are tied to status transitions.
func (s *ReservationService) Create(in ReservationInput) (domain.Reservation, error) {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(in.Date) == "" {
		errs = append(errs, "date is required")
	}
	if len(errs) > 0 {
		return domain.Reservation{}, &ValidationError{Errors: errs}
	}

	rec := domain.Reservation{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Phone:       in.Phone,
		Date:        in.Date,
		Species:     in.Species,
		Breed:       in.Breed,
		Reason:      in.Reason,
		SpecialNote: in.SpecialNote,
		Status:      domain.ReservationPending,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Repo.Insert(rec); err != nil {
		return domain.Reservation{}, err
	}
	return rec, nil
}

func (s *ReservationService) List(status string, page, limit int) ([]domain.Reservation, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	return s.Repo.List(status, limit, (page-1)*limit)
}

func (s *ReservationService) Get(id string) (domain.Reservation, error) {
	rec, err := s.Repo.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Reservation{}, ErrNotFound
	}
	return rec, err
}

// Update applies a partial write and, iff the status value changed,
// sends the notification templated on the new status. Send failures are
// logged and swallowed.
func (s *ReservationService) Update(id string, upd ReservationUpdate) (domain.Reservation, error) {
	if upd.Status == nil && upd.AdminNotes == nil {
		return domain.Reservation{}, ErrNoFields
	}

	rec, err := s.Repo.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Reservation{}, ErrNotFound
	}
	if err != nil {
		return domain.Reservation{}, err
	}

	prev := rec.Status
	if upd.Status != nil {
		if !domain.ValidReservationStatus(*upd.Status) {
			return domain.Reservation{}, &ValidationError{Errors: []string{
				"status must be one of pending, confirmed, cancelled, completed",
			}}
		}
		rec.Status = *upd.Status
	}
	if upd.AdminNotes != nil {
		rec.AdminNotes = *upd.AdminNotes
	}
	rec.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.Repo.UpdateStatusNotes(rec); err != nil {
		return domain.Reservation{}, err
	}

	if prev != rec.Status {
		if subject, body, ok := mail.ReservationStatusEmail(rec.Status, rec.Name, rec.Date); ok {
			if err := s.Mail.Send(rec.Email, subject, body); err != nil {
				applog.Error(nil, "reservation.notify.fail", err, map[string]any{
					"reservation_id": rec.ID, "status": rec.Status,
				})
			}
		}
	}

	return rec, nil
}

// Delete removes a reservation and always notifies the requester that
// the appointment was cancelled, whatever its prior status was.
func (s *ReservationService) Delete(id string) error {
	rec, err := s.Repo.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(id); err != nil {
		return err
	}

	subject, body := mail.ReservationRemovedEmail(rec.Name)
	if err := s.Mail.Send(rec.Email, subject, body); err != nil {
		applog.Error(nil, "reservation.notify.fail", err, map[string]any{
			"reservation_id": rec.ID, "status": "removed",
		})
	}
	return nil
}
