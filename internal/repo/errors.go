package repo

import "errors"

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrUserNotFound    = errors.New("user not found")

	// ErrDuplicatedValueUnique is returned when a unique business key (product
	// code, username) is already taken.
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")
)
