package service

import (
	"context"
	"errors"
	"time"

	"github.com/jasenardian/react-digital-clean/internal/constants"
	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/jasenardian/react-digital-clean/internal/repository"
	"go.uber.org/zap"
)

type AccountService interface {
	Register(ctx context.Context, cmd RegisterAccountCommand) (model.Account, error)
	GetBalance(ctx context.Context, accountID int64) (model.Account, error)
}

type account struct {
	accountRepo repository.AccountRepository
	logger      *zap.Logger
}

func NewAccountService(accountRepo repository.AccountRepository, logger *zap.Logger) AccountService {
	return &account{accountRepo: accountRepo, logger: logger}
}

func (s *account) Register(ctx context.Context, cmd RegisterAccountCommand) (model.Account, error) {
	acc := model.Account{
		Username:  cmd.Username,
		Email:     cmd.Email,
		Balance:   0,
		Status:    model.AccountStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.accountRepo.Create(ctx, &acc); err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			return model.Account{}, NewServiceError(constants.ErrCodeAccountExists, err)
		}

		s.logger.Error("Failed to create account", zap.Error(err), zap.String("username", cmd.Username))
		return model.Account{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.logger.Info("Account registered",
		zap.Int64("accountID", acc.ID),
		zap.String("username", cmd.Username))

	return acc, nil
}

func (s *account) GetBalance(ctx context.Context, accountID int64) (model.Account, error) {
	acc, err := s.accountRepo.FindByID(accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return model.Account{}, NewServiceError(constants.ErrCodeAccountNotFound, err)
		}
		return model.Account{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	return acc, nil
}
