package auth

import "errors"

// ErrUserExists indicates a duplicate username or email.
var ErrUserExists = errors.New("user already exists")
