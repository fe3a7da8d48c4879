package ports

import (
	"ledger-console/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// AccountService is the text-facing entry point to a single ledger account.
// Amounts arrive as raw text and are parsed and quantized before use.
type AccountService interface {
	AccountID() uuid.UUID
	Owner() string
	SetOwner(name string)
	Balance() domain.Money
	Deposit(amount string) (domain.Money, error)
	Withdraw(amount string) (domain.Money, error)
}
