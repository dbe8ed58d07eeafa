package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"pawmart/internal/domain"
	"pawmart/internal/query"
	"pawmart/internal/repos"
)

type CatalogService struct {
	Pets    *repos.PetRepo
	Prods   *repos.ProductRepo
	Reviews *repos.ReviewRepo
}

func NewCatalogService(pets *repos.PetRepo, prods *repos.ProductRepo, reviews *repos.ReviewRepo) *CatalogService {
	return &CatalogService{Pets: pets, Prods: prods, Reviews: reviews}
}

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	Limit       int `json:"limit"`
}

func paginate(page, limit, total int) Pagination {
	return Pagination{
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
		TotalItems:  total,
		Limit:       limit,
	}
}

type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type MapLocation struct {
	Address string `json:"address"`
	Link    string `json:"link"`
	Coords  Coords `json:"coords"`
}

// PetView is the public response shape: string id, RFC3339 timestamps
// (omitted when absent), images never null, recency flag recomputed at
// response time.
type PetView struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Category       string       `json:"category"`
	Type           string       `json:"type"`
	Breed          string       `json:"breed,omitempty"`
	Age            string       `json:"age"`
	Color          string       `json:"color"`
	Gender         string       `json:"gender"`
	Size           string       `json:"size"`
	Weight         float64      `json:"weight"`
	Price          float64      `json:"price"`
	Location       string       `json:"location"`
	Description    string       `json:"description,omitempty"`
	Images         []string     `json:"images"`
	AdditionalInfo []string     `json:"additionalInfo,omitempty"`
	MapLocation    *MapLocation `json:"mapLocation,omitempty"`
	IsNewlyAdded   bool         `json:"isNewlyAdded"`
	CreatedAt      string       `json:"createdAt,omitempty"`
	UpdatedAt      string       `json:"updatedAt,omitempty"`
}

type ProductView struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Type            string   `json:"type"`
	Color           string   `json:"color,omitempty"`
	Price           float64  `json:"price"`
	Stock           int      `json:"stock"`
	Description     string   `json:"description,omitempty"`
	Images          []string `json:"images"`
	AverageRating   float64  `json:"averageRating"`
	IsNewlyReleased bool     `json:"isNewlyReleased"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

// NewlyAdded reports whether an RFC3339 creation timestamp falls inside
// the recency window, inclusive at the boundary. Unparseable timestamps
// are simply not fresh.
func NewlyAdded(createdAt string, now time.Time) bool {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return false
	}
	return !t.Before(now.Add(-query.FreshWindow))
}

func decodeList(raw string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	_ = json.Unmarshal([]byte(raw), &out)
	if out == nil {
		out = []string{}
	}
	return out
}

func mapPet(p domain.Pet, now time.Time) PetView {
	v := PetView{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		Type:           p.Type,
		Breed:          p.Breed,
		Age:            p.Age,
		Color:          p.Color,
		Gender:         p.Gender,
		Size:           p.Size,
		Weight:         p.Weight,
		Price:          p.Price,
		Location:       p.Location,
		Description:    p.Description,
		Images:         decodeList(p.ImagesJSON),
		AdditionalInfo: nil,
		IsNewlyAdded:   NewlyAdded(p.CreatedAt, now),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if extra := decodeList(p.AdditionalJSON); len(extra) > 0 {
		v.AdditionalInfo = extra
	}
	if p.HasMap {
		v.MapLocation = &MapLocation{
			Address: p.MapAddress,
			Link:    p.MapLink,
			Coords:  Coords{Lat: p.MapLat, Lng: p.MapLng},
		}
	}
	return v
}

func (s *CatalogService) mapProduct(p domain.Product, now time.Time) ProductView {
	avg, _ := s.Reviews.AverageRating(p.ID)
	return ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		Type:            p.Type,
		Color:           p.Color,
		Price:           p.Price,
		Stock:           p.Stock,
		Description:     p.Description,
		Images:          decodeList(p.ImagesJSON),
		AverageRating:   avg,
		IsNewlyReleased: NewlyAdded(p.CreatedAt, now),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// SearchPets executes a spec: count with the same predicate as the page
// query, then map rows to the response shape.
func (s *CatalogService) SearchPets(spec query.Spec) ([]PetView, Pagination, error) {
	total, err := s.Pets.Count(spec)
	if err != nil {
		return nil, Pagination{}, err
	}
	rows, err := s.Pets.List(spec)
	if err != nil {
		return nil, Pagination{}, err
	}
	now := time.Now()
	out := make([]PetView, 0, len(rows))
	for _, p := range rows {
		out = append(out, mapPet(p, now))
	}
	return out, paginate(spec.Page, spec.Limit, total), nil
}

func (s *CatalogService) SearchProducts(spec query.Spec) ([]ProductView, Pagination, error) {
	total, err := s.Prods.Count(spec)
	if err != nil {
		return nil, Pagination{}, err
	}
	rows, err := s.Prods.List(spec)
	if err != nil {
		return nil, Pagination{}, err
	}
	now := time.Now()
	out := make([]ProductView, 0, len(rows))
	for _, p := range rows {
		out = append(out, s.mapProduct(p, now))
	}
	return out, paginate(spec.Page, spec.Limit, total), nil
}

func (s *CatalogService) GetPet(id string) (PetView, error) {
	p, err := s.Pets.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return PetView{}, ErrNotFound
	}
	if err != nil {
		return PetView{}, err
	}
	return mapPet(p, time.Now()), nil
}

func (s *CatalogService) GetProduct(id string) (ProductView, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ProductView{}, ErrNotFound
	}
	if err != nil {
		return ProductView{}, err
	}
	return s.mapProduct(p, time.Now()), nil
}

// ---------- Write path ----------

type MapLocationInput struct {
	Address *string `json:"address"`
	Link    *string `json:"link"`
	Coords  *struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	} `json:"coords"`
}

type PetInput struct {
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	Type           string            `json:"type"`
	Breed          string            `json:"breed"`
	Age            string            `json:"age"`
	Color          string            `json:"color"`
	Gender         string            `json:"gender"`
	Size           string            `json:"size"`
	Weight         *float64          `json:"weight"`
	Price          *float64          `json:"price"`
	Location       string            `json:"location"`
	Description    string            `json:"description"`
	Images         []string          `json:"images"`
	AdditionalInfo []string          `json:"additionalInfo"`
	MapLocation    *MapLocationInput `json:"mapLocation"`
}

func validatePet(in PetInput) *ValidationError {
	var errs []string
	req := []struct{ name, val string }{
		{"name", in.Name}, {"category", in.Category}, {"type", in.Type},
		{"age", in.Age}, {"color", in.Color}, {"gender", in.Gender},
		{"size", in.Size}, {"location", in.Location},
	}
	for _, f := range req {
		if f.val == "" {
			errs = append(errs, f.name+" is required")
		}
	}
	if in.Weight == nil {
		errs = append(errs, "weight is required")
	} else if *in.Weight < 0 {
		errs = append(errs, "weight must be non-negative")
	}
	if in.Price == nil {
		errs = append(errs, "price is required")
	} else if *in.Price < 0 {
		errs = append(errs, "price must be non-negative")
	}
	if in.Gender != "" && in.Gender != "Male" && in.Gender != "Female" && in.Gender != "N/A" {
		errs = append(errs, "gender must be one of Male, Female, N/A")
	}
	if in.Size != "" && in.Size != "Tiny" && in.Size != "Small" && in.Size != "Medium" && in.Size != "Large" {
		errs = append(errs, "size must be one of Tiny, Small, Medium, Large")
	}
	if m := in.MapLocation; m != nil {
		if m.Address == nil || m.Link == nil {
			errs = append(errs, "mapLocation.address and mapLocation.link must be strings")
		}
		if m.Coords == nil || m.Coords.Lat == nil || m.Coords.Lng == nil {
			errs = append(errs, "mapLocation.coords.lat and mapLocation.coords.lng must be numbers")
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func encodeList(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func petFromInput(id string, in PetInput, ts string) domain.Pet {
	p := domain.Pet{
		ID:             id,
		Name:           in.Name,
		Category:       in.Category,
		Type:           in.Type,
		Breed:          in.Breed,
		Age:            in.Age,
		Color:          in.Color,
		Gender:         in.Gender,
		Size:           in.Size,
		Weight:         *in.Weight,
		Price:          *in.Price,
		Location:       in.Location,
		Description:    in.Description,
		ImagesJSON:     encodeList(in.Images),
		AdditionalJSON: encodeList(in.AdditionalInfo),
		CreatedAt:      ts,
	}
	if m := in.MapLocation; m != nil {
		p.HasMap = true
		p.MapAddress = *m.Address
		p.MapLink = *m.Link
		p.MapLat = *m.Coords.Lat
		p.MapLng = *m.Coords.Lng
	}
	return p
}

// CreatePet validates and persists a new pet. No partial writes: the
// record is only inserted after every check passes.
func (s *CatalogService) CreatePet(in PetInput) (PetView, error) {
	if ve := validatePet(in); ve != nil {
		return PetView{}, ve
	}
	p := petFromInput(uuid.NewString(), in, time.Now().UTC().Format(time.RFC3339))
	if err := s.Pets.Insert(p); err != nil {
		return PetView{}, err
	}
	return mapPet(p, time.Now()), nil
}

// UpdatePet re-validates the full payload against an existing record.
func (s *CatalogService) UpdatePet(id string, in PetInput) (PetView, error) {
	existing, err := s.Pets.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return PetView{}, ErrNotFound
	}
	if err != nil {
		return PetView{}, err
	}
	if ve := validatePet(in); ve != nil {
		return PetView{}, ve
	}
	p := petFromInput(id, in, existing.CreatedAt)
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.Pets.Update(p); err != nil {
		return PetView{}, err
	}
	return mapPet(p, time.Now()), nil
}

func (s *CatalogService) DeletePet(id string) error {
	if _, err := s.Pets.Get(id); errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return s.Pets.Delete(id)
}

type ProductInput struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	Color       string   `json:"color"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

func validateProduct(in ProductInput) *ValidationError {
	var errs []string
	for _, f := range []struct{ name, val string }{
		{"name", in.Name}, {"category", in.Category}, {"type", in.Type},
	} {
		if f.val == "" {
			errs = append(errs, f.name+" is required")
		}
	}
	if in.Price == nil {
		errs = append(errs, "price is required")
	} else if *in.Price < 0 {
		errs = append(errs, "price must be non-negative")
	}
	if in.Stock == nil {
		errs = append(errs, "stock is required")
	} else if *in.Stock < 0 {
		errs = append(errs, "stock must be non-negative")
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (s *CatalogService) CreateProduct(in ProductInput) (ProductView, error) {
	if ve := validateProduct(in); ve != nil {
		return ProductView{}, ve
	}
	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Category:    in.Category,
		Type:        in.Type,
		Color:       in.Color,
		Price:       *in.Price,
		Stock:       *in.Stock,
		Description: in.Description,
		ImagesJSON:  encodeList(in.Images),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Prods.Insert(p); err != nil {
		return ProductView{}, err
	}
	return s.mapProduct(p, time.Now()), nil
}

func (s *CatalogService) UpdateProduct(id string, in ProductInput) (ProductView, error) {
	existing, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ProductView{}, ErrNotFound
	}
	if err != nil {
		return ProductView{}, err
	}
	if ve := validateProduct(in); ve != nil {
		return ProductView{}, ve
	}
	p := domain.Product{
		ID:          id,
		Name:        in.Name,
		Category:    in.Category,
		Type:        in.Type,
		Color:       in.Color,
		Price:       *in.Price,
		Stock:       *in.Stock,
		Description: in.Description,
		ImagesJSON:  encodeList(in.Images),
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Prods.Update(p); err != nil {
		return ProductView{}, err
	}
	return s.mapProduct(p, time.Now()), nil
}

func (s *CatalogService) DeleteProduct(id string) error {
	if _, err := s.Prods.Get(id); errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return s.Prods.Delete(id)
}
