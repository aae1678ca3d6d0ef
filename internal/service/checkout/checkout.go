// Package checkout implements the cart mutations and the order placement
// workflow: availability checks, authoritative pricing and the atomic
// stock-decrement-plus-order-insert commit.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/smartstock/inventory_shop/internal/cartstore"
	"github.com/smartstock/inventory_shop/internal/logging"
	"github.com/smartstock/inventory_shop/internal/models"
	"github.com/smartstock/inventory_shop/internal/repo"
	"github.com/smartstock/inventory_shop/internal/validate"
)

type Service struct {
	DB      *gorm.DB
	Catalog *repo.CatalogRepo
	Orders  *repo.OrderRepo
	Carts   cartstore.Store
}

func New(db *gorm.DB, carts cartstore.Store) *Service {
	return &Service{
		DB:      db,
		Catalog: &repo.CatalogRepo{DB: db},
		Orders:  &repo.OrderRepo{DB: db},
		Carts:   carts,
	}
}

// AddItem puts one unit of the product into the session cart. A repeat add
// bumps the existing line's quantity instead of appending a second line. The
// cart is not touched when the product does not exist.
func (s *Service) AddItem(ctx context.Context, sessionID string, productID uint) (*models.Cart, error) {
	product, err := s.Catalog.GetProduct(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	cart, err := s.Carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity++
			cart.Items[i].Product = product
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: productID,
			Product:   product,
			Quantity:  1,
		})
	}

	if err := s.Carts.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return cart, nil
}

// RemoveItem drops the matching line from the cart. Removing a product that
// is not in the cart is a no-op, not an error.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID uint) (*models.Cart, error) {
	cart, err := s.Carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	items := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	cart.Items = items

	if err := s.Carts.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return cart, nil
}

// ValidateForCheckout gates both the checkout view and order placement.
func (s *Service) ValidateForCheckout(cart *models.Cart) error {
	if cart == nil || len(cart.Items) == 0 {
		return ErrEmptyCart
	}
	return nil
}

// ContactInfo is what the guest supplies at checkout. Name and Email are
// required; Phone and Address are optional but bounded when present.
type ContactInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// PlaceOrder turns the session cart into a persisted order. Every product is
// re-read inside the transaction so the cart's cached snapshot can never
// leak a stale price or stock figure into the order. The availability pass
// is all-or-nothing: a single short line rolls back every staged decrement
// and leaves the cart in place for a retry.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, info ContactInfo) (*models.Order, error) {
	cart, err := s.Carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := s.ValidateForCheckout(cart); err != nil {
		return nil, err
	}
	if info.Name == "" || info.Email == "" {
		return nil, ErrMissingContactInfo
	}
	if !validate.ValidEmail(info.Email) {
		return nil, fmt.Errorf("%w: %q is not a valid email", ErrMissingContactInfo, info.Email)
	}
	if fieldErrs := validate.Order(&models.Order{
		GuestName:       info.Name,
		Email:           info.Email,
		PhoneNumber:     info.Phone,
		ShippingAddress: info.Address,
		Status:          models.OrderStatusPending,
	}); len(fieldErrs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingContactInfo, fieldErrs[0].Message)
	}

	var order *models.Order
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		catalog := s.Catalog.WithTx(tx)
		orders := s.Orders.WithTx(tx)

		items := make([]models.OrderItem, 0, len(cart.Items))
		var total float64
		for _, it := range cart.Items {
			product, err := catalog.GetProduct(ctx, it.ProductID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrProductUnavailable, it.ProductID)
			}
			if err != nil {
				return err
			}
			if product.QuantityInStock < it.Quantity {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}

			// Freshly read price becomes the frozen unit price.
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  it.Quantity,
				UnitPrice: product.Price,
			})
			total += float64(it.Quantity) * product.Price

			ok, err := catalog.DecrementStock(ctx, product.ID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// A concurrent checkout won the race between the read
				// above and the guarded decrement.
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}
		}

		order = &models.Order{
			OrderDate:       time.Now().UTC(),
			GuestName:       info.Name,
			Email:           info.Email,
			PhoneNumber:     info.Phone,
			ShippingAddress: info.Address,
			TotalPrice:      total,
			Status:          models.OrderStatusPending,
			Items:           items,
		}
		return orders.CreateOrder(ctx, order)
	})
	if txErr != nil {
		if IsValidationError(txErr) {
			return nil, txErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, txErr)
	}

	// The order is committed at this point; a failed cart clear must not
	// undo it, so it is only logged.
	if err := s.Carts.Clear(ctx, sessionID); err != nil {
		logging.FromContext(ctx).Error("cart clear after order failed",
			"session_id", sessionID, "order_id", order.ID, "error", err)
	}

	return order, nil
}
