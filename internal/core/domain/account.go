package domain

import (
	"ledger-console/pkg/apperror"

	"github.com/google/uuid"
)

// Account is a single-owner ledger account. Its balance never drops below 0.00.
type Account struct {
	ID      uuid.UUID
	owner   string
	balance Money
}

// NewAccount opens an account for owner. A negative initial balance is
// rejected with ACC_001; pass Zero when no initial balance was given.
func NewAccount(owner string, initial Money) (*Account, error) {
	if initial.IsNegative() {
		return nil, apperror.InvalidAmount("Initial balance cannot be negative")
	}
	return &Account{
		ID:      uuid.New(),
		owner:   owner,
		balance: initial,
	}, nil
}

// Owner returns the display label.
func (a *Account) Owner() string {
	return a.owner
}

// SetOwner replaces the display label. The balance is untouched.
func (a *Account) SetOwner(name string) {
	a.owner = name
}

// CheckBalance returns the current balance.
func (a *Account) CheckBalance() Money {
	return a.balance
}

// Deposit credits amount and returns the new balance.
func (a *Account) Deposit(amount Money) (Money, error) {
	if !amount.IsPositive() {
		return a.balance, apperror.InvalidAmount("Deposit amount must be greater than 0.00")
	}

	next, ok := a.balance.Add(amount)
	if !ok {
		return a.balance, apperror.InvalidAmount("Deposit amount is too large")
	}

	a.balance = next
	return a.balance, nil
}

// Withdraw debits amount and returns the new balance.
// Withdrawing exactly the full balance leaves 0.00.
func (a *Account) Withdraw(amount Money) (Money, error) {
	if !amount.IsPositive() {
		return a.balance, apperror.InvalidAmount("Withdrawal amount must be greater than 0.00")
	}
	if amount > a.balance {
		return a.balance, apperror.ErrInsufficientFunds()
	}

	// amount and balance are both non-negative, so this cannot overflow.
	a.balance -= amount
	return a.balance, nil
}
