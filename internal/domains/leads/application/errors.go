package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/erpflow/internal/domains/leads/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid lead input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrNonPositiveValue) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidPriority) ||
		errors.Is(err, domain.ErrInvalidInteraction) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
