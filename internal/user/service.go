package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"sepet-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, params RegisterParams) (string, User, error)
	Login(ctx context.Context, email, password string) (string, *Profile, error)
	GetProfile(ctx context.Context, userID int) (*Profile, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) error
	ListNonAdmin(ctx context.Context) ([]User, error)
}

type service struct {
	repo       Repository
	adminEmail string
}

func NewService(repo Repository, adminEmail string) Service {
	return &service{repo: repo, adminEmail: adminEmail}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (string, User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("email", params.Email),
	)

	hashed, err := HashPassword(params.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	// The configured admin account gets the admin role on sign-up.
	role := RoleCustomer
	if s.adminEmail != "" && strings.EqualFold(params.Email, s.adminEmail) {
		role = RoleAdmin
	}

	u, err := s.repo.Create(ctx, params, hashed, role)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return "", User{}, ErrEmailExists
		}
		log.Error("failed to create user", zap.Error(err))
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Int("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register completed", zap.Int("user_id", u.ID))

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user", zap.Error(err))
		return "", nil, err
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	orders, err := s.repo.OrdersGraph(ctx, u.ID)
	if err != nil {
		log.Error("failed to load order history", zap.Int("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Int("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("login completed", zap.Int("user_id", u.ID))

	return token, &Profile{User: u, Orders: orders}, nil
}

func (s *service) GetProfile(ctx context.Context, userID int) (*Profile, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	orders, err := s.repo.OrdersGraph(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: u, Orders: orders}, nil
}

func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams) error {
	if _, err := s.repo.FindByID(ctx, params.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	err := s.repo.UpdateProfile(ctx, params)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// ListNonAdmin returns every user except the configured admin account.
func (s *service) ListNonAdmin(ctx context.Context) ([]User, error) {
	return s.repo.ListExcluding(ctx, s.adminEmail)
}
