package repos

import (
	"fmt"

	"pawmart/internal/domain"
	"pawmart/internal/query"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, category, type, color, price, stock, description, images_json,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) List(s query.Spec) ([]domain.Product, error) {
	where, args := s.Clause()
	sql := `SELECT` + productCols + ` FROM products` + where + s.OrderClause() + ` LIMIT ? OFFSET ?`
	args = append(args, s.Limit, s.Offset())

	var out []domain.Product
	err := r.db.Select(&out, sql, args...)
	return out, err
}

func (r *ProductRepo) Count(s query.Spec) (int, error) {
	where, args := s.Clause()
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`+where, args...)
	return n, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Insert(p domain.Product) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO products(id, name, category, type, color, price, stock, description, images_json, created_at)
	  VALUES (:id, :name, :category, :type, :color, :price, :stock, :description, :images_json, :created_at)`, p)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.NamedExec(`
	  UPDATE products SET
	    name=:name, category=:category, type=:type, color=:color, price=:price,
	    stock=:stock, description=:description, images_json=:images_json, updated_at=:updated_at
	  WHERE id=:id`, p)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

// DecrementStock subtracts "by" units only if enough stock exists.
func (r *ProductRepo) DecrementStock(id string, by int) error {
	res, err := r.db.Exec(`
		UPDATE products SET stock = stock - ?
		WHERE id = ? AND stock >= ?
	`, by, id, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("insufficient stock for %s", id)
	}
	return nil
}

func (r *ProductRepo) CountAll() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}
