package repos

import (
	"pawmart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type TeamRepo struct{ db *sqlx.DB }

func NewTeamRepo(db *sqlx.DB) *TeamRepo { return &TeamRepo{db: db} }

func (r *TeamRepo) List() ([]domain.TeamMember, error) {
	var out []domain.TeamMember
	err := r.db.Select(&out, `
	  SELECT id, name, role, photo, bio, created_at
	  FROM team_members ORDER BY created_at
	`)
	return out, err
}

func (r *TeamRepo) Insert(m domain.TeamMember) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO team_members(id, name, role, photo, bio, created_at)
	  VALUES (:id, :name, :role, :photo, :bio, :created_at)`, m)
	return err
}

func (r *TeamRepo) Update(m domain.TeamMember) error {
	_, err := r.db.NamedExec(`
	  UPDATE team_members SET name=:name, role=:role, photo=:photo, bio=:bio WHERE id=:id`, m)
	return err
}

func (r *TeamRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM team_members WHERE id = ?`, id)
	return err
}

func (r *TeamRepo) Get(id string) (domain.TeamMember, error) {
	var m domain.TeamMember
	err := r.db.Get(&m, `SELECT id, name, role, photo, bio, created_at FROM team_members WHERE id = ?`, id)
	return m, err
}
