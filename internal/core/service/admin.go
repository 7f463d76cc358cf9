package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/parulcreation/projectshop/internal/core/domain"
	"github.com/parulcreation/projectshop/internal/core/utils"
	"go.uber.org/zap"
)

// SetupAdmin creates the first admin account and refuses once one exists.
func (s *Service) SetupAdmin(ctx context.Context, username string, password string) (*domain.Admin, error) {
	count, err := s.repo.CountAdmins(ctx)
	if err != nil {
		s.logger.Error("Count admins", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if count > 0 {
		return nil, domain.ErrAdminExists
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		s.logger.Error("Hash password", zap.Error(err))
		return nil, domain.ErrInternal
	}

	admin := &domain.Admin{
		ID:        uuid.New(),
		Username:  username,
		Password:  hashed,
		CreatedAt: time.Now(),
	}

	newAdmin, err := s.repo.CreateAdmin(ctx, admin)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, domain.ErrAdminExists
		}
		s.logger.Error("Create admin", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newAdmin, nil
}

func (s *Service) LoginAdmin(ctx context.Context, username string, password string) (string, error) {
	admin, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.ErrInternal
	}

	err = utils.ComparePassword(password, admin.Password)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(admin)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	return token, nil
}

func (s *Service) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := s.repo.DashboardStats(ctx)
	if err != nil {
		s.logger.Error("Dashboard stats", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return stats, nil
}
