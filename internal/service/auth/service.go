package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInvalidToken       = errors.New("invalid token")
)

const (
	minPasswordLen = 6
	issuer         = "cinego"
)

type Config struct {
	Secret         string
	TokenTTL       time.Duration
	BcryptCost     int
	InitialBalance decimal.Decimal
	Now            func() time.Time
}

type Service struct {
	users repository.UserRepo
	cfg   Config
}

func New(store repository.Store, cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Service{users: store.Users(), cfg: cfg}
}

// Claims is the payload of an access token. The subject carries the user id.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is who a verified token speaks for.
type Identity struct {
	UserID int64
	Role   domain.Role
}

func (i Identity) IsAdmin() bool { return i.Role == domain.RoleAdmin }

type RegisterInput struct {
	Login    string
	Password string
	FullName string
	Email    string
	Phone    string
}

type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      domain.User `json:"user"`
}

// Register creates a customer account funded with the configured initial
// balance.
//
// Returns:
//   - error: domain.ErrValidation for malformed input or a taken login.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	const op = "service.auth.Register"

	in.Login = strings.TrimSpace(in.Login)
	in.FullName = strings.TrimSpace(in.FullName)

	switch {
	case in.Login == "":
		return nil, fmt.Errorf("%s:%w", op, domain.Validationf("login is required"))
	case len(in.Password) < minPasswordLen:
		return nil, fmt.Errorf("%s:%w", op, domain.Validationf("password must be at least %d characters", minPasswordLen))
	case in.FullName == "":
		return nil, fmt.Errorf("%s:%w", op, domain.Validationf("full name is required"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	u := domain.User{
		Login:        in.Login,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		FullName:     in.FullName,
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		Balance:      s.cfg.InitialBalance,
		CreatedAt:    s.cfg.Now(),
	}

	id, err := s.users.Create(ctx, &u)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s:%w", op, domain.Validationf("login %q is already taken", in.Login))
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	u.ID = id

	return &u, nil
}

// Login checks the password and issues a signed HS256 token.
func (s *Service) Login(ctx context.Context, login, password string) (*Session, error) {
	const op = "service.auth.Login"

	u, err := s.users.GetByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidCredentials)
	}

	token, exp, err := s.issue(u)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &Session{Token: token, ExpiresAt: exp, User: *u}, nil
}

func (s *Service) issue(u *domain.User) (string, time.Time, error) {
	now := s.cfg.Now().UTC()
	exp := now.Add(s.cfg.TokenTTL)

	claims := Claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, exp, nil
}

// ParseToken verifies the signature and expiry of an access token.
func (s *Service) ParseToken(token string) (Identity, error) {
	const op = "service.auth.ParseToken"

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.cfg.Now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%s:%w: %v", op, ErrInvalidToken, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return Identity{}, fmt.Errorf("%s:%w: bad subject", op, ErrInvalidToken)
	}

	role, err := domain.ParseRole(string(claims.Role))
	if err != nil {
		return Identity{}, fmt.Errorf("%s:%w: %v", op, ErrInvalidToken, err)
	}

	return Identity{UserID: id, Role: role}, nil
}
