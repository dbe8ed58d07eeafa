package services_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"pawmart/internal/domain"
	"pawmart/internal/repos"
	"pawmart/internal/services"
)

// recorder captures outgoing notifications so tests can assert on the
// exact count and content of sends.
type recorder struct {
	sent []sentMail
	fail error
}

type sentMail struct{ to, subject, body string }

func (r *recorder) Send(to, subject, body string) error {
	if r.fail != nil {
		return r.fail
	}
	r.sent = append(r.sent, sentMail{to, subject, body})
	return nil
}

func memdbReservations(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`
	CREATE TABLE reservations(
	  id TEXT PRIMARY KEY, name TEXT, email TEXT, phone TEXT DEFAULT '',
	  date TEXT, species TEXT DEFAULT '', breed TEXT DEFAULT '',
	  reason TEXT DEFAULT '', special_note TEXT DEFAULT '',
	  status TEXT DEFAULT 'pending', admin_notes TEXT DEFAULT '',
	  created_at TEXT, updated_at TEXT
	)`); err != nil {
		t.Fatal(err)
	}
	return db
}

func seedReservation(t *testing.T, db *sqlx.DB, id, status string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO reservations(id, name, email, phone, date, status, created_at)
		VALUES(?, 'Dana Reyes', 'dana@example.com', '555-0101', '2026-09-15', ?, ?)`,
		id, status, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatal(err)
	}
}

func reservationFixture(t *testing.T) (*services.ReservationService, *recorder, *sqlx.DB) {
	t.Helper()
	db := memdbReservations(t)
	rec := &recorder{}
	return services.NewReservationService(repos.NewReservationRepo(db), rec), rec, db
}

func str(s string) *string { return &s }

func TestCreateReservation(t *testing.T) {
	svc, mails, _ := reservationFixture(t)

	rec, err := svc.Create(services.ReservationInput{
		Name: "Dana Reyes", Email: "dana@example.com", Date: "2026-09-15", Species: "dog",
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" || rec.Status != domain.ReservationPending {
		t.Fatalf("unexpected record: %+v", rec)
	}
	// booking itself never notifies
	if len(mails.sent) != 0 {
		t.Fatalf("create must not notify, sent %d", len(mails.sent))
	}

	if _, err := svc.Create(services.ReservationInput{Name: "Dana"}); err == nil {
		t.Fatal("missing email and date must be rejected")
	} else if ve, okVE := services.AsValidation(err); !okVE || len(ve.Errors) != 2 {
		t.Fatalf("want two field errors, got %v", err)
	}
}

func TestUpdateConfirmSendsOneEmail(t *testing.T) {
	svc, mails, db := reservationFixture(t)
	seedReservation(t, db, "res-1", domain.ReservationPending)

	got, err := svc.Update("res-1", services.ReservationUpdate{Status: str(domain.ReservationConfirmed)})
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.ReservationConfirmed {
		t.Fatalf("status not applied: %q", got.Status)
	}
	if got.UpdatedAt == "" {
		t.Fatal("update must stamp updated_at")
	}
	if len(mails.sent) != 1 {
		t.Fatalf("want exactly one notification, got %d", len(mails.sent))
	}
	m := mails.sent[0]
	if m.to != "dana@example.com" {
		t.Fatalf("notification addressed to %q", m.to)
	}
	if !strings.Contains(strings.ToLower(m.subject), "confirmed") {
		t.Fatalf("subject does not mention confirmation: %q", m.subject)
	}
	if !strings.Contains(m.body, "Dana Reyes") || !strings.Contains(m.body, "2026-09-15") {
		t.Fatalf("body missing requester name or date: %q", m.body)
	}
}

func TestUpdateNotesOnlySendsNothing(t *testing.T) {
	svc, mails, db := reservationFixture(t)
	seedReservation(t, db, "res-1", domain.ReservationPending)

	got, err := svc.Update("res-1", services.ReservationUpdate{AdminNotes: str("call back tomorrow")})
	if err != nil {
		t.Fatal(err)
	}
	if got.AdminNotes != "call back tomorrow" || got.Status != domain.ReservationPending {
		t.Fatalf("unexpected record after notes-only update: %+v", got)
	}
	if len(mails.sent) != 0 {
		t.Fatalf("notes-only update must not notify, sent %d", len(mails.sent))
	}
}

func TestUpdateSameStatusSendsNothing(t *testing.T) {
	svc, mails, db := reservationFixture(t)
	seedReservation(t, db, "res-1", domain.ReservationConfirmed)

	if _, err := svc.Update("res-1", services.ReservationUpdate{Status: str(domain.ReservationConfirmed)}); err != nil {
		t.Fatal(err)
	}
	if len(mails.sent) != 0 {
		t.Fatalf("re-asserting the same status must not notify, sent %d", len(mails.sent))
	}
}

func TestUpdateCompletedPersistsWithoutEmail(t *testing.T) {
	svc, mails, db := reservationFixture(t)
	seedReservation(t, db, "res-1", domain.ReservationConfirmed)

	got, err := svc.Update("res-1", services.ReservationUpdate{Status: str(domain.ReservationCompleted)})
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.ReservationCompleted {
		t.Fatalf("status not applied: %q", got.Status)
	}
	// no completed template exists, so the change is silent
	if len(mails.sent) != 0 {
		t.Fatalf("completed transition must not notify, sent %d", len(mails.sent))
	}
}

func TestUpdateRejectsBadStatus(t *testing.T) {
	svc, mails, db := reservationFixture(t)
	seedReservation(t, db, "res-1", domain.ReservationPending)

	_, err := svc.Update("res-1", services.ReservationUpdate{Status: str("approved")})
	if _, ok := services.AsValidation(err); !ok {
		t.Fatalf("want validation error, got %v", err)
	}
	reloaded, err := svc.Get("res-1")
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Status != domain.ReservationPending {
		t.Fatalf("rejected write must not persist: %q", reloaded.Status)
	}
	if len(mails.sent) != 0 {
		t.Fatal("rejected write must not notify")
	}
}

func TestUpdateEmptyPayload(t *testing.T) {
	svc, _, db := reservationFixture(t)
	seedReservation(t, db, "res-1", domain.ReservationPending)

	if _, err := svc.Update("res-1", services.ReservationUpdate{}); !errors.Is(err, services.ErrNoFields) {
		t.Fatalf("want ErrNoFields, got %v", err)
	}
}

func TestUpdateMissingReservation(t *testing.T) {
	svc, _, _ := reservationFixture(t)
	if _, err := svc.Update("res-gone", services.ReservationUpdate{Status: str(domain.ReservationConfirmed)}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUpdateSendFailureDoesNotFailWrite(t *testing.T) {
	svc, mails, db := reservationFixture(t)
	mails.fail = errors.New("smtp: connection refused")
	seedReservation(t, db, "res-1", domain.ReservationPending)

	got, err := svc.Update("res-1", services.ReservationUpdate{Status: str(domain.ReservationCancelled)})
	if err != nil {
		t.Fatalf("mailer failure must not surface: %v", err)
	}
	if got.Status != domain.ReservationCancelled {
		t.Fatalf("status not applied despite mailer failure: %q", got.Status)
	}
}

func TestDeleteSendsRemovalEmail(t *testing.T) {
	svc, mails, db := reservationFixture(t)
	seedReservation(t, db, "res-1", domain.ReservationCompleted)

	if err := svc.Delete("res-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get("res-1"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("record must be gone, got %v", err)
	}
	// removal notifies regardless of the prior status
	if len(mails.sent) != 1 {
		t.Fatalf("want one removal notification, got %d", len(mails.sent))
	}
	if mails.sent[0].to != "dana@example.com" {
		t.Fatalf("removal addressed to %q", mails.sent[0].to)
	}
}

func TestDeleteMissingReservation(t *testing.T) {
	svc, mails, _ := reservationFixture(t)
	if err := svc.Delete("res-gone"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if len(mails.sent) != 0 {
		t.Fatal("missing record must not notify")
	}
}
