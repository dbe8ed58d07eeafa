package repos

import (
	"pawmart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type GalleryRepo struct{ db *sqlx.DB }

func NewGalleryRepo(db *sqlx.DB) *GalleryRepo { return &GalleryRepo{db: db} }

func (r *GalleryRepo) List() ([]domain.GalleryImage, error) {
	var out []domain.GalleryImage
	err := r.db.Select(&out, `
	  SELECT id, url, caption, position, created_at
	  FROM gallery ORDER BY position, created_at
	`)
	return out, err
}

func (r *GalleryRepo) Insert(g domain.GalleryImage) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO gallery(id, url, caption, position, created_at)
	  VALUES (:id, :url, :caption, :position, :created_at)`, g)
	return err
}

func (r *GalleryRepo) Update(g domain.GalleryImage) error {
	_, err := r.db.NamedExec(`
	  UPDATE gallery SET url=:url, caption=:caption, position=:position WHERE id=:id`, g)
	return err
}

func (r *GalleryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM gallery WHERE id = ?`, id)
	return err
}

func (r *GalleryRepo) Get(id string) (domain.GalleryImage, error) {
	var g domain.GalleryImage
	err := r.db.Get(&g, `SELECT id, url, caption, position, created_at FROM gallery WHERE id = ?`, id)
	return g, err
}
