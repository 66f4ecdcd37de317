package auth

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/logger"
	"github.com/cybermarket/server/internal/metrics"
	"github.com/cybermarket/server/internal/repository"
)

// Credential length limits
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input cap
)

// Session is the result of a successful signup or login
type Session struct {
	Token  string          `json:"token"`
	User   *domain.Account `json:"user"`
	Expiry int64           `json:"expiry"`
}

// Service defines the interface for account operations
type Service interface {
	Signup(ctx context.Context, username, password string) (*Session, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	Verify(token string) (*Claims, error)
}

// AdminChecker decides whether a username gets admin rights at signup
type AdminChecker func(username string) bool

type service struct {
	accounts repository.Accounts
	records  repository.UserRecords
	tokens   *TokenManager
	isAdmin  AdminChecker
	ttl      time.Duration
	now      func() time.Time
}

// NewService creates a new auth service
func NewService(accounts repository.Accounts, records repository.UserRecords, tokens *TokenManager, isAdmin AdminChecker, ttl time.Duration) Service {
	return &service{
		accounts: accounts,
		records:  records,
		tokens:   tokens,
		isAdmin:  isAdmin,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Signup registers a new account and creates its default user record
func (s *service) Signup(ctx context.Context, username, password string) (*Session, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	isAdmin := s.isAdmin(username)
	record := domain.NewUserRecord(account.ID, username, isAdmin, account.CreatedAt)
	if err := s.records.CreateRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create user record: %w", err)
	}

	metrics.SignupsTotal.Inc()
	log.Info("Account created", "username", username, "admin", isAdmin)

	return s.newSession(account, isAdmin)
}

// Login checks credentials and issues a token
func (s *service) Login(ctx context.Context, username, password string) (*Session, error) {
	log := logger.FromContext(ctx)

	account, err := s.accounts.GetAccountByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		// Do not reveal whether the username exists.
		metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, domain.ErrInvalidCredentials
	}

	record, err := s.records.GetRecord(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Info("Login succeeded", "username", account.Username)

	return s.newSession(account, record.IsAdmin)
}

// Verify resolves a token to its claims
func (s *service) Verify(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}

func (s *service) newSession(account *domain.Account, isAdmin bool) (*Session, error) {
	token, err := s.tokens.Generate(Claims{
		UserID:   account.ID,
		Username: account.Username,
		IsAdmin:  isAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Session{
		Token:  token,
		User:   account,
		Expiry: s.now().Add(s.ttl).Unix(),
	}, nil
}

func validateCredentials(username, password string) error {
	nameLen := utf8.RuneCountInString(username)
	if nameLen < MinUsernameLength || nameLen > MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", domain.ErrInvalidInput, MinUsernameLength, MaxUsernameLength)
	}
	if strings.ContainsAny(username, " \t\n") {
		return fmt.Errorf("%w: username must not contain whitespace", domain.ErrInvalidInput)
	}
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: password must be %d-%d bytes", domain.ErrInvalidInput, MinPasswordLength, MaxPasswordLength)
	}
	return nil
}
