package services

import (
	"errors"
	"fmt"
	"time"

	"pawmart/internal/repos"

	"github.com/google/uuid"
)

type Contact struct {
	Name    string
	Email   string
	Address string
}

type OrderService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
}

func NewOrderService(carts *repos.CartRepo, prods *repos.ProductRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{Carts: carts, Prods: prods, Orders: orders}
}

// Place checks stock for every line, decrements it, and writes the order
// from the cart's server-side prices. The cart is cleared on success.
func (s *OrderService) Place(sessionID string, contact Contact) (string, float64, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return "", 0, err
	}

	items, err := s.Carts.Items(cartID)
	if err != nil {
		return "", 0, err
	}
	if len(items) == 0 {
		return "", 0, errors.New("cart empty")
	}

	// pre-check stock
	for _, it := range items {
		p, err := s.Prods.Get(it.ProductID)
		if err != nil {
			return "", 0, err
		}
		if p.Stock < it.Qty {
			return "", 0, fmt.Errorf("insufficient stock for %s (need %d, have %d)", it.ProductID, it.Qty, p.Stock)
		}
	}

	// decrement
	for _, it := range items {
		if err := s.Prods.DecrementStock(it.ProductID, it.Qty); err != nil {
			return "", 0, err
		}
	}

	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Qty)
	}

	orderID := uuid.NewString()
	ts := time.Now().UTC().Format(time.RFC3339)
	if err := s.Orders.Create(orderID, sessionID, contact.Name, contact.Email, contact.Address, total, ts); err != nil {
		return "", 0, err
	}
	for _, it := range items {
		if err := s.Orders.InsertItem(orderID, it.ProductID, it.Qty, it.Price); err != nil {
			return "", 0, err
		}
	}
	_ = s.Carts.Clear(cartID)
	return orderID, total, nil
}
