package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ndome/investhub/internal/apperrors"
	"github.com/ndome/investhub/internal/models"
	"github.com/ndome/investhub/internal/repository"
)

type Config struct {
	// Hasher used during registration or login
	// Bcrypt hasher is used if not set
	Hasher PasswordHasher
}

type AuthService struct {
	token   *TokenManager
	hasher  PasswordHasher
	storage repository.Storage
}

func NewService(cfg Config, token *TokenManager, storage repository.Storage) (*AuthService, error) {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	if token == nil || storage == nil {
		return nil, fmt.Errorf("token manager and storage must not be nil")
	}

	return &AuthService{
		token:   token,
		hasher:  hasher,
		storage: storage,
	}, nil
}

// Register investor and issue access token
// The fresh investor gets the investor role and a zero balance
func (s *AuthService) Register(ctx context.Context, username string, password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("can't use this as password, Err: %w", err)
	}

	var investor models.Investor
	err = s.storage.InTx(ctx, func(storage repository.Storage) error {
		investor, err = storage.Investors().CreateInvestor(ctx, username, hash, models.RoleInvestor)
		if err != nil {
			return err
		}

		return storage.Balances().CreateBalance(ctx, investor.ID)
	})
	if err != nil {
		return "", fmt.Errorf("can't create investor. Err: %w", err)
	}

	return s.token.Generate(investor.ID, investor.Role)
}

// Login investor with username and password
// Returns apperrors.ErrInvestorNotFound for a wrong password too, so the
// response does not leak which usernames exist
func (s *AuthService) Login(ctx context.Context, username string, password string) (string, error) {
	investor, err := s.storage.Investors().GetInvestorByUsername(ctx, username)
	if err != nil {
		return "", apperrors.ErrInvestorNotFound
	}

	if err := s.hasher.Compare(investor.HashedPassword, password); err != nil {
		return "", apperrors.ErrInvestorNotFound
	}

	return s.token.Generate(investor.ID, investor.Role)
}

// Auth resolves the investor from the request's bearer token
func (s *AuthService) Auth(ctx context.Context, r *http.Request) (models.Investor, error) {
	var investor models.Investor

	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return investor, fmt.Errorf("missing bearer token")
	}

	claims, err := s.token.Parse(token)
	if err != nil {
		return investor, err
	}

	investor, err = s.storage.Investors().GetInvestorByID(ctx, claims.InvestorID)
	if err != nil {
		return investor, err
	}

	return investor, nil
}
