package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/erpflow/internal/domains/products/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid product input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptySKU) ||
		errors.Is(err, domain.ErrEmptyCategory) ||
		errors.Is(err, domain.ErrNonPositivePrice) ||
		errors.Is(err, domain.ErrNegativeStock) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
