package checkout

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"strings"
)

// OrderForm carries the customer details of the order form.
type OrderForm struct {
	CustomerName string `validate:"required"`
	Email        string `validate:"required"`
	Phone        string `validate:"required"`
	Address      string `validate:"required"`
}

func (f OrderForm) trimmed() OrderForm {
	return OrderForm{
		CustomerName: strings.TrimSpace(f.CustomerName),
		Email:        strings.TrimSpace(f.Email),
		Phone:        strings.TrimSpace(f.Phone),
		Address:      strings.TrimSpace(f.Address),
	}
}

// FieldError names an invalid form field.
type FieldError struct {
	Field string
	Rule  string
}

func (e FieldError) String() string {
	return e.Field + " " + e.Rule
}

// ValidationError lists every failing field. It matches domain.ErrMissingFields.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("%s: %s", domain.ErrMissingFields, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrMissingFields
}

func validateForm(v *validator.Validate, form OrderForm) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validator.Struct: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}
