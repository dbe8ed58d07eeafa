package repos

import (
	"pawmart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReservationRepo struct{ db *sqlx.DB }

func NewReservationRepo(db *sqlx.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationCols = `
  id, name, email, phone, date, species, breed, reason, special_note,
  status, admin_notes, created_at, COALESCE(updated_at,'') AS updated_at`

// List returns reservations, optionally narrowed to one status, newest first.
func (r *ReservationRepo) List(status string, limit, offset int) ([]domain.Reservation, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []domain.Reservation
	if status != "" {
		err := r.db.Select(&out, `SELECT`+reservationCols+` FROM reservations
			WHERE status = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`, status, limit, offset)
		return out, err
	}
	err := r.db.Select(&out, `SELECT`+reservationCols+` FROM reservations
		ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	return out, err
}

func (r *ReservationRepo) Get(id string) (domain.Reservation, error) {
	var res domain.Reservation
	err := r.db.Get(&res, `SELECT`+reservationCols+` FROM reservations WHERE id = ?`, id)
	return res, err
}

func (r *ReservationRepo) Insert(res domain.Reservation) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO reservations(id, name, email, phone, date, species, breed, reason,
	    special_note, status, admin_notes, created_at)
	  VALUES (:id, :name, :email, :phone, :date, :species, :breed, :reason,
	    :special_note, :status, :admin_notes, :created_at)`, res)
	return err
}

// UpdateStatusNotes persists the two admin-writable fields.
func (r *ReservationRepo) UpdateStatusNotes(res domain.Reservation) error {
	_, err := r.db.Exec(`
	  UPDATE reservations SET status = ?, admin_notes = ?, updated_at = ?
	  WHERE id = ?`, res.Status, res.AdminNotes, res.UpdatedAt, res.ID)
	return err
}

func (r *ReservationRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM reservations WHERE id = ?`, id)
	return err
}

func (r *ReservationRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM reservations WHERE status = ?`, status)
	return n, err
}
