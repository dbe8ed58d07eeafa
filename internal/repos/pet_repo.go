package repos

import (
	"pawmart/internal/domain"
	"pawmart/internal/query"

	"github.com/jmoiron/sqlx"
)

type PetRepo struct{ db *sqlx.DB }

func NewPetRepo(db *sqlx.DB) *PetRepo { return &PetRepo{db: db} }

const petCols = `
  id, name, category, type, breed, age, color, gender, size, weight, price,
  location, description, images_json, additional_json,
  map_address, map_link, map_lat, map_lng, has_map,
  created_at, COALESCE(updated_at,'') AS updated_at`

// List runs the page query for a spec.
func (r *PetRepo) List(s query.Spec) ([]domain.Pet, error) {
	where, args := s.Clause()
	sql := `SELECT` + petCols + ` FROM pets` + where + s.OrderClause() + ` LIMIT ? OFFSET ?`
	args = append(args, s.Limit, s.Offset())

	var out []domain.Pet
	err := r.db.Select(&out, sql, args...)
	return out, err
}

// Count uses the same predicate as List so pagination metadata always
// reflects the filtered set.
func (r *PetRepo) Count(s query.Spec) (int, error) {
	where, args := s.Clause()
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM pets`+where, args...)
	return n, err
}

func (r *PetRepo) Get(id string) (domain.Pet, error) {
	var p domain.Pet
	err := r.db.Get(&p, `SELECT`+petCols+` FROM pets WHERE id = ?`, id)
	return p, err
}

func (r *PetRepo) Insert(p domain.Pet) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO pets(
	    id, name, category, type, breed, age, color, gender, size, weight, price,
	    location, description, images_json, additional_json,
	    map_address, map_link, map_lat, map_lng, has_map, created_at
	  ) VALUES (
	    :id, :name, :category, :type, :breed, :age, :color, :gender, :size, :weight, :price,
	    :location, :description, :images_json, :additional_json,
	    :map_address, :map_link, :map_lat, :map_lng, :has_map, :created_at
	  )`, p)
	return err
}

func (r *PetRepo) Update(p domain.Pet) error {
	_, err := r.db.NamedExec(`
	  UPDATE pets SET
	    name=:name, category=:category, type=:type, breed=:breed, age=:age,
	    color=:color, gender=:gender, size=:size, weight=:weight, price=:price,
	    location=:location, description=:description, images_json=:images_json,
	    additional_json=:additional_json, map_address=:map_address,
	    map_link=:map_link, map_lat=:map_lat, map_lng=:map_lng, has_map=:has_map,
	    updated_at=:updated_at
	  WHERE id=:id`, p)
	return err
}

func (r *PetRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM pets WHERE id = ?`, id)
	return err
}

func (r *PetRepo) CountAll() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM pets`)
	return n, err
}
