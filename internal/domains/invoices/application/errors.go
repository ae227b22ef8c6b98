package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/erpflow/internal/domains/invoices/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid invoice input")

var invariantErrors = []error{
	domain.ErrEmptyCustomer,
	domain.ErrNonPositiveSubtotal,
	domain.ErrNegativeTax,
	domain.ErrNonPositiveTotal,
	domain.ErrNoItems,
	domain.ErrEmptyProduct,
	domain.ErrNonPositiveQuantity,
	domain.ErrNonPositiveUnitPrice,
	domain.ErrInvalidStatus,
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range invariantErrors {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	return err
}
