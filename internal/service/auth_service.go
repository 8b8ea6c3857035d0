package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"collabhub/internal/models"
	"collabhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims carries the typed session identity. IsAdmin lives in the token
// rather than in mutable user metadata, and is re-checked at the admin
// handlers on top of the middleware gate.
type Claims struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type SignUpInput struct {
	Email        string
	Password     string
	FullName     string
	Role         string
	Organization string
}

type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*models.User, string, error)
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)
	SignOut(ctx context.Context, claims *Claims) error
	ParseToken(tokenString string) (*Claims, error)
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, *models.Profile, error)
}

type authService struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	cache     repository.CacheRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	cache repository.CacheRepository,
	jwtSecret string,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		users:     users,
		profiles:  profiles,
		cache:     cache,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) SignUp(ctx context.Context, input SignUpInput) (*models.User, string, error) {
	if input.Role != "" && !models.ValidRole(input.Role) {
		return nil, "", ErrInvalidRole
	}

	_, err := s.users.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, "", ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	// Seed the profile with what the signup form collected.
	profile := &models.Profile{
		ID:           user.ID,
		ContactEmail: &input.Email,
	}
	if input.FullName != "" {
		profile.FullName = &input.FullName
	}
	if input.Role != "" {
		profile.Role = &input.Role
	}
	if input.Organization != "" {
		profile.Organization = &input.Organization
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	// A profile stub must exist after any successful sign-in.
	if err := s.profiles.EnsureExists(ctx, user.ID); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignOut puts the token id on the revocation list until the token would
// have expired anyway.
func (s *authService) SignOut(ctx context.Context, claims *Claims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revocationKey(claims.ID), "1", ttl)
}

func (s *authService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}

func (s *authService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	return s.cache.Exists(ctx, revocationKey(tokenID))
}

func (s *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, *models.Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	if err := s.profiles.EnsureExists(ctx, userID); err != nil {
		return nil, nil, err
	}
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  user.ID.String(),
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func revocationKey(tokenID string) string {
	return "auth:revoked:" + tokenID
}
