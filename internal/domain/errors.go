package domain

import "errors"

var (
	// Expense errors
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrInvalidCategory = errors.New("category cannot be empty")
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrExpenseNotFound = errors.New("expense not found")

	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrBadUsername   = errors.New("invalid username")
	ErrWeakPassword  = errors.New("password does not meet requirements")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUserInactive  = errors.New("user account is inactive")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
