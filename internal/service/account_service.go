package service

import (
	"errors"

	"ledger-console/internal/core/domain"
	"ledger-console/internal/core/ports"
	"ledger-console/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var _ ports.AccountService = (*AccountServiceImpl)(nil)

// AccountServiceImpl implements ports.AccountService over one in-memory account.
type AccountServiceImpl struct {
	account *domain.Account
	log     zerolog.Logger
}

// NewAccountService creates a new AccountServiceImpl.
func NewAccountService(account *domain.Account, log zerolog.Logger) *AccountServiceImpl {
	return &AccountServiceImpl{
		account: account,
		log:     log.With().Str("account_id", account.ID.String()).Logger(),
	}
}

func (s *AccountServiceImpl) AccountID() uuid.UUID {
	return s.account.ID
}

func (s *AccountServiceImpl) Owner() string {
	return s.account.Owner()
}

// SetOwner reassigns the owner label.
func (s *AccountServiceImpl) SetOwner(name string) {
	prev := s.account.Owner()
	s.account.SetOwner(name)

	s.log.Debug().
		Str("op", "set_owner").
		Str("previous_owner", prev).
		Str("owner", name).
		Msg("owner updated")
}

func (s *AccountServiceImpl) Balance() domain.Money {
	return s.account.CheckBalance()
}

// Deposit parses amount, quantizes it, then credits the account.
func (s *AccountServiceImpl) Deposit(amount string) (domain.Money, error) {
	return s.apply("deposit", amount, s.account.Deposit)
}

// Withdraw parses amount, quantizes it, then debits the account.
func (s *AccountServiceImpl) Withdraw(amount string) (domain.Money, error) {
	return s.apply("withdraw", amount, s.account.Withdraw)
}

// apply runs the rounding -> validation -> update sequence shared by both
// mutating operations.
func (s *AccountServiceImpl) apply(op string, raw string, fn func(domain.Money) (domain.Money, error)) (domain.Money, error) {
	amount, err := domain.ParseMoney(raw)
	if err != nil {
		s.rejected(op, raw, err)
		return s.account.CheckBalance(), err
	}

	balance, err := fn(amount)
	if err != nil {
		s.rejected(op, amount.String(), err)
		return balance, err
	}

	s.log.Debug().
		Str("op", op).
		Str("amount", amount.String()).
		Str("balance", balance.String()).
		Msg("operation applied")

	return balance, nil
}

func (s *AccountServiceImpl) rejected(op string, amount string, err error) {
	evt := s.log.Info().
		Str("op", op).
		Str("amount", amount).
		Str("kind", apperror.KindOf(err).String())
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		evt = evt.Str("error_code", appErr.Code)
	}
	evt.Msg("operation rejected")
}
