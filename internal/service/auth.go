package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"taskmanager/internal/logger"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL   = 72 * time.Hour
	minPasswordLength = 7
)

// AuthService handles credential verification and the session token
// lifecycle (Issued -> Active -> Revoked).
type AuthService struct {
	users      repository.Users
	tokens     repository.Tokens
	mailer     Mailer
	signingKey []byte
	tokenTTL   time.Duration
	log        *logger.Logger
}

func NewAuthService(users repository.Users, tokens repository.Tokens, mail Mailer, cfg Config, log *logger.Logger) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		mailer:     mail,
		signingKey: []byte(cfg.SigningKey),
		tokenTTL:   ttl,
		log:        log,
	}
}

var _ Authorization = (*AuthService)(nil)

type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Age      int
}

// Claims defines JWT claims with the owning user id embedded.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// SignUp validates the input, hashes the password, creates the account and
// issues its first session token. A welcome email goes out best-effort.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*models.User, string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, "", fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, "", err
	}
	if in.Age < 0 {
		return nil, "", fmt.Errorf("%w: age must not be negative", ErrValidation)
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{Name: name, Email: email, PasswordHash: hash, Age: in.Age}
	if _, err := s.users.Create(ctx, u); err != nil {
		if isDuplicateEmail(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.issueToken(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}

	s.sendAsync("welcome_email_failed", u.Email, func() error {
		return s.mailer.SendWelcome(u.Email, u.Name)
	})
	return u, token, nil
}

// Login verifies credentials and issues a fresh session token. A missing
// account and a wrong password are deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	u, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Authenticate verifies the token signature and claims, loads the user and
// confirms the exact token string is still in the active list. A revoked
// token fails here even though its signature is still structurally valid.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	userID, err := s.parseToken(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}
	active, err := s.tokens.Exists(ctx, userID, accessToken)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrInvalidToken
	}
	return u, nil
}

// Logout revokes a single session token. Revoked is terminal.
func (s *AuthService) Logout(ctx context.Context, userID int, token string) error {
	return s.tokens.Remove(ctx, userID, token)
}

// LogoutAll clears the user's whole session list.
func (s *AuthService) LogoutAll(ctx context.Context, userID int) error {
	return s.tokens.RemoveAll(ctx, userID)
}

// issueToken signs a JWT for the user and persists it in the session list.
func (s *AuthService) issueToken(ctx context.Context, userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// jti keeps tokens distinct even when issued within one second
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token for user %d: %w", userID, err)
	}
	if err := s.tokens.Add(ctx, userID, signed); err != nil {
		return "", err
	}
	return signed, nil
}

// parseToken parses the JWT and returns the embedded user id.
func (s *AuthService) parseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

func (s *AuthService) sendAsync(logKey, email string, send func() error) {
	if s.mailer == nil {
		return
	}
	go func() {
		if err := send(); err != nil && s.log != nil {
			s.log.Errorw(logKey, "err", err, "email", email)
		}
	}()
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func validatePassword(password string) error {
	trimmed := strings.TrimSpace(password)
	if len(trimmed) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	if strings.Contains(strings.ToLower(trimmed), "password") {
		return fmt.Errorf("%w: password must not contain \"password\"", ErrValidation)
	}
	return nil
}

// normalizeEmail lowercases, trims and syntax-checks an email address.
func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", fmt.Errorf("%w: email must not be empty", ErrValidation)
	}
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", fmt.Errorf("%w: invalid email %q", ErrValidation, email)
	}
	return normalized, nil
}

func isDuplicateEmail(err error) bool {
	return errors.Is(err, repository.ErrDuplicateEmail)
}
