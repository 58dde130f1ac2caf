package interfaces

import (
	"context"
)

type CustomerRepository interface {
	// Exists reports whether a customer record is keyed by the given
	// address.
	Exists(ctx context.Context, email string) (bool, error)
}
