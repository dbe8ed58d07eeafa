package repos

import (
	"pawmart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Insert(rev domain.Review) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO reviews(id, product_id, author, rating, comment, created_at)
	  VALUES (:id, :product_id, :author, :rating, :comment, :created_at)`, rev)
	return err
}

func (r *ReviewRepo) ListByProduct(productID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
	  SELECT id, product_id, author, rating, comment, created_at
	  FROM reviews WHERE product_id = ?
	  ORDER BY created_at DESC
	`, productID)
	return out, err
}

// AverageRating returns 0 when the product has no reviews.
func (r *ReviewRepo) AverageRating(productID string) (float64, error) {
	var avg float64
	err := r.db.Get(&avg, `SELECT COALESCE(AVG(rating),0) FROM reviews WHERE product_id = ?`, productID)
	return avg, err
}

func (r *ReviewRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM reviews WHERE id = ?`, id)
	return err
}

func (r *ReviewRepo) Get(id string) (domain.Review, error) {
	var rev domain.Review
	err := r.db.Get(&rev, `SELECT id, product_id, author, rating, comment, created_at FROM reviews WHERE id = ?`, id)
	return rev, err
}
