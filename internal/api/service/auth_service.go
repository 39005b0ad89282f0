package service

import (
	"context"
	"errors"
	"time"

	"epicode/internal/api/apperrors"
	"epicode/internal/api/dto"
	"epicode/internal/api/middleware/auth"
	"epicode/internal/api/models"
	"epicode/internal/api/repository"
	"epicode/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// bcrypt hash of a throwaway password, compared against on unknown emails so
// login timing does not reveal whether an account exists.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e"

// Claims is the access-token payload.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*dto.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*dto.AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflictf("email already in use")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, apperrors.Conflictf("email already in use")
		}
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		auth.VerifyPassword(dummyHash, password)
		return nil, apperrors.ErrUnauthorized
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken.Token,
		User:         dto.FromModelToUserSummary(user),
	}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) RefreshAccessToken(ctx context.Context, refreshTokenString string) (string, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshTokenString)
	if err != nil {
		return "", apperrors.ErrUnauthorized
	}

	if time.Now().After(refreshToken.ExpiresAt) {
		s.refreshTokenRepo.Delete(ctx, refreshToken.ID)
		return "", apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, refreshToken.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUnauthorized
		}
		return "", err
	}

	return s.generateAccessToken(user)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}
