package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{name: "positive amount", amount: "25.50", wantErr: nil},
		{name: "tiny positive amount", amount: "0.01", wantErr: nil},
		{name: "very large amount", amount: "999999999999.99", wantErr: nil},
		{name: "zero", amount: "0", wantErr: domain.ErrInvalidAmount},
		{name: "negative", amount: "-10.00", wantErr: domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)

			err := domain.ValidateAmount(amount)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		wantErr  bool
	}{
		{name: "plain category", category: "Food", wantErr: false},
		{name: "category with inner spaces", category: "Eating Out", wantErr: false},
		{name: "untrimmed category", category: "  Food  ", wantErr: false},
		{name: "empty", category: "", wantErr: true},
		{name: "whitespace only", category: "   ", wantErr: true},
		{name: "tab and newline only", category: "\t\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateCategory(tt.category)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidCategory) {
					t.Errorf("expected ErrInvalidCategory, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "strong password", password: "Str0ngpass", wantErr: false},
		{name: "too short", password: "Ab1", wantErr: true},
		{name: "no digit", password: "Passwordonly", wantErr: true},
		{name: "no uppercase", password: "password123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidatePassword(tt.password)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrWeakPassword) {
					t.Errorf("expected ErrWeakPassword, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	if err := domain.ValidateEmail("user@example.com"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := domain.ValidateEmail("not-an-email"); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
}
