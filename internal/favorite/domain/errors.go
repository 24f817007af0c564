package domain

import "errors"

// Error taxonomy for favorite mutations and retrievals. Missing and inactive
// favorites map to the same ErrNotFound so clients cannot probe other users'
// deactivated favorites.
var (
	ErrNotFound         = errors.New("favorite not found")
	ErrAlreadyFavorited = errors.New("product already in favorites")
	ErrProductNotFound  = errors.New("product not found")
	ErrForbidden        = errors.New("permission denied")
)
