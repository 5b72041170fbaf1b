package services

import "errors"

var (
	ErrUnauthorized  = errors.New("sign in required")
	ErrAdminRequired = errors.New("admin sign in required")
	ErrOrderNotFound = errors.New("order not found")
	ErrAlreadyPaid   = errors.New("order is already paid")
	ErrOrderNotPaid  = errors.New("order is not paid yet")
	ErrEmptyItems    = errors.New("order items cannot be empty")
	ErrInvalidMethod = errors.New("invalid payment method")
)
