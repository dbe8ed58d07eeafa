package handlers

import (
	"pawmart/internal/mail"
	"pawmart/internal/repos"
	"pawmart/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	PetHandler         *PetHandler
	ProductHandler     *ProductHandler
	ReservationHandler *ReservationHandler
	CartHandler        *CartHandler
	OrderHandler       *OrderHandler
	WishlistHandler    *WishlistHandler
	ReviewHandler      *ReviewHandler
	AdminHandler       *AdminHandler
}

func NewDeps(db *sqlx.DB, notifier mail.Notifier, auth *services.AuthService) *Deps {
	petRepo := repos.NewPetRepo(db)
	prodRepo := repos.NewProductRepo(db)
	resvRepo := repos.NewReservationRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	wishRepo := repos.NewWishlistRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	galleryRepo := repos.NewGalleryRepo(db)
	teamRepo := repos.NewTeamRepo(db)

	catalogSvc := services.NewCatalogService(petRepo, prodRepo, reviewRepo)
	resvSvc := services.NewReservationService(resvRepo, notifier)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, prodRepo, orderRepo)
	wishSvc := services.NewWishlistService(wishRepo, prodRepo)
	reviewSvc := services.NewReviewService(reviewRepo, prodRepo)

	return &Deps{
		PetHandler:         &PetHandler{Catalog: catalogSvc},
		ProductHandler:     &ProductHandler{Catalog: catalogSvc},
		ReservationHandler: &ReservationHandler{Resv: resvSvc},
		CartHandler:        &CartHandler{Cart: cartSvc},
		OrderHandler:       &OrderHandler{Cart: cartSvc, Order: orderSvc, Repo: orderRepo, Auth: auth},
		WishlistHandler:    &WishlistHandler{Wish: wishSvc},
		ReviewHandler:      &ReviewHandler{Reviews: reviewSvc},
		AdminHandler: &AdminHandler{
			OrderRepo: orderRepo, Gallery: galleryRepo, Team: teamRepo,
			Pets: petRepo, Prods: prodRepo, Resv: resvRepo,
		},
	}
}
