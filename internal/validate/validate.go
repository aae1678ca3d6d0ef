// Package validate holds explicit per-entity field validation, kept apart
// from persistence so handlers and services can reuse it.
package validate

import (
	"fmt"
	"net/mail"

	"github.com/smartstock/inventory_shop/internal/models"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const (
	maxNameLen        = 200
	maxDescriptionLen = 1000
	maxGuestNameLen   = 100
	maxEmailLen       = 100
	maxPhoneLen       = 20
	maxAddressLen     = 200
	maxStatusLen      = 50
	maxCategoryName   = 100
	maxCategoryDesc   = 500
)

func Product(p *models.Product) []FieldError {
	var errs []FieldError
	if p.Name == "" {
		errs = append(errs, FieldError{"name", "name is required"})
	}
	if len(p.Name) > maxNameLen {
		errs = append(errs, FieldError{"name", fmt.Sprintf("name must be at most %d characters", maxNameLen)})
	}
	if len(p.Description) > maxDescriptionLen {
		errs = append(errs, FieldError{"description", fmt.Sprintf("description must be at most %d characters", maxDescriptionLen)})
	}
	if p.Price < 0 {
		errs = append(errs, FieldError{"price", "price cannot be negative"})
	}
	if p.QuantityInStock < 0 {
		errs = append(errs, FieldError{"quantity_in_stock", "quantity in stock cannot be negative"})
	}
	if p.LowStockThreshold < 0 {
		errs = append(errs, FieldError{"low_stock_threshold", "low stock threshold cannot be negative"})
	}
	return errs
}

func Category(c *models.Category) []FieldError {
	var errs []FieldError
	if c.Name == "" {
		errs = append(errs, FieldError{"name", "name is required"})
	}
	if len(c.Name) > maxCategoryName {
		errs = append(errs, FieldError{"name", fmt.Sprintf("name must be at most %d characters", maxCategoryName)})
	}
	if len(c.Description) > maxCategoryDesc {
		errs = append(errs, FieldError{"description", fmt.Sprintf("description must be at most %d characters", maxCategoryDesc)})
	}
	return errs
}

// Order validates a guest order. Phone and shipping address are optional at
// checkout, so they are only bounded when present.
func Order(o *models.Order) []FieldError {
	var errs []FieldError
	if o.GuestName == "" {
		errs = append(errs, FieldError{"guest_name", "guest name is required"})
	}
	if len(o.GuestName) > maxGuestNameLen {
		errs = append(errs, FieldError{"guest_name", fmt.Sprintf("guest name must be at most %d characters", maxGuestNameLen)})
	}
	if o.Email == "" {
		errs = append(errs, FieldError{"email", "email is required"})
	} else if !ValidEmail(o.Email) {
		errs = append(errs, FieldError{"email", "email is not a valid address"})
	}
	if len(o.Email) > maxEmailLen {
		errs = append(errs, FieldError{"email", fmt.Sprintf("email must be at most %d characters", maxEmailLen)})
	}
	if len(o.PhoneNumber) > maxPhoneLen {
		errs = append(errs, FieldError{"phone_number", fmt.Sprintf("phone number must be at most %d characters", maxPhoneLen)})
	}
	if len(o.ShippingAddress) > maxAddressLen {
		errs = append(errs, FieldError{"shipping_address", fmt.Sprintf("shipping address must be at most %d characters", maxAddressLen)})
	}
	if o.TotalPrice < 0 {
		errs = append(errs, FieldError{"total_price", "total price cannot be negative"})
	}
	if len(o.Status) > maxStatusLen {
		errs = append(errs, FieldError{"status", fmt.Sprintf("status must be at most %d characters", maxStatusLen)})
	}
	return errs
}

func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
