package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"pawmart/internal/domain"
	"pawmart/internal/repos"

	"github.com/google/uuid"
)

type ReviewService struct {
	Repo  *repos.ReviewRepo
	Prods *repos.ProductRepo
}

func NewReviewService(repo *repos.ReviewRepo, prods *repos.ProductRepo) *ReviewService {
	return &ReviewService{Repo: repo, Prods: prods}
}

type ReviewInput struct {
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *ReviewService) Add(productID string, in ReviewInput) (domain.Review, error) {
	var errs []string
	if strings.TrimSpace(in.Author) == "" {
		errs = append(errs, "author is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		errs = append(errs, "rating must be between 1 and 5")
	}
	if len(errs) > 0 {
		return domain.Review{}, &ValidationError{Errors: errs}
	}

	if _, err := s.Prods.Get(productID); errors.Is(err, sql.ErrNoRows) {
		return domain.Review{}, ErrNotFound
	} else if err != nil {
		return domain.Review{}, err
	}

	rev := domain.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		Author:    strings.TrimSpace(in.Author),
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Repo.Insert(rev); err != nil {
		return domain.Review{}, err
	}
	return rev, nil
}

func (s *ReviewService) List(productID string) ([]domain.Review, error) {
	if _, err := s.Prods.Get(productID); errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	rows, err := s.Repo.ListByProduct(productID)
	if rows == nil {
		rows = []domain.Review{}
	}
	return rows, err
}

func (s *ReviewService) Delete(id string) error {
	if _, err := s.Repo.Get(id); errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
