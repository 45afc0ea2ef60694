package services

import (
	"context"
	"errors"
	"time"

	"qa-forum/config"
	"qa-forum/helper"
	"qa-forum/models"
	"qa-forum/repositories"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Promote(ctx context.Context, email string) (*models.User, error)
}

type authService struct {
	store     *repositories.Store
	validator *helper.Validator
	jwt       config.JWTConfig
}

func NewAuthService(store *repositories.Store, validator *helper.Validator, jwtCfg config.JWTConfig) AuthService {
	return &authService{
		store:     store,
		validator: validator,
		jwt:       jwtCfg,
	}
}

// Register creates the user and its profile together.
func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	// the unique index still guards the insert below
	_, err := s.store.Users.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, models.NewConflict("user already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     models.RoleMember,
	}
	profile := &models.Profile{}

	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.NewConflict("user already exists")
			}
			return err
		}
		profile.UserID = user.ID
		return tx.Profiles.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	profile.User = *user

	return s.respond(user, profile)
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.store.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorUnauthorized{Message: "invalid credentials"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrorUnauthorized{Message: "invalid credentials"}
	}

	profile, err := s.store.Profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return s.respond(user, profile)
}

// Promote grants the admin role, which is required to curate tags.
func (s *authService) Promote(ctx context.Context, email string) (*models.User, error) {
	user, err := s.store.Users.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFound("user %s not found", email)
	}
	if err != nil {
		return nil, err
	}

	err = s.store.DB.WithContext(ctx).Model(user).Update("role", models.RoleAdmin).Error
	if err != nil {
		return nil, err
	}
	user.Role = models.RoleAdmin
	return user, nil
}

func (s *authService) respond(user *models.User, profile *models.Profile) (*models.AuthResponse, error) {
	token, err := s.generateToken(user, profile)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token:   token,
		User:    *user,
		Profile: *profile,
	}, nil
}

func (s *authService) generateToken(user *models.User, profile *models.Profile) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"profile_id": profile.ID,
		"username":   user.Username,
		"role":       user.Role,
		"exp":        now.Add(s.jwt.Expiration).Unix(),
		"iat":        now.Unix(),
		"nbf":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.jwt.Secret))
}
