package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nithya-42/Stagelink/internal/domain"
	"github.com/Nithya-42/Stagelink/internal/repository"
	postgresrepo "github.com/Nithya-42/Stagelink/internal/repository/postgres"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is pending approval")
	ErrInvalidToken       = errors.New("invalid token")
)

type Claims struct {
	UserID int64       `json:"uid"`
	Role   domain.Role `json:"role"`
	Staff  bool        `json:"staff"`
	jwt.RegisteredClaims
}

// Auth verifies credentials and issues/parses HS256 bearer tokens.
// Registration lives outside this service; accounts arrive through the
// signup flow or seeding.
type Auth struct {
	store  *postgresrepo.Store
	secret []byte
	ttl    time.Duration
}

func New(store *postgresrepo.Store, secret string, ttl time.Duration) *Auth {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Auth{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Login checks the password against the stored bcrypt hash and returns
// a signed token. Inactive accounts (artists awaiting approval) cannot
// log in.
func (a *Auth) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	const op = "auth.Login"

	user, err := a.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, fmt.Errorf("%s:%w", op, ErrInvalidCredentials)
		}
		return "", nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%s:%w", op, ErrInvalidCredentials)
	}

	if !user.Active {
		return "", nil, fmt.Errorf("%s:%w", op, ErrAccountInactive)
	}

	token, err := a.IssueToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("%s:%w", op, err)
	}

	return token, user, nil
}

// IssueToken signs a token carrying the user's ID, role and staff flag.
func (a *Auth) IssueToken(user *domain.User) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		Staff:  user.Staff,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// ParseToken validates a signed token and returns its claims.
func (a *Auth) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// LoadUser resolves the token subject against the user store, so a
// deactivated account loses access even before its token expires.
func (a *Auth) LoadUser(ctx context.Context, claims *Claims) (*domain.User, error) {
	const op = "auth.LoadUser"

	user, err := a.store.Users().Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrInvalidToken)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if !user.Active {
		return nil, fmt.Errorf("%s:%w", op, ErrAccountInactive)
	}

	return user, nil
}

// HashPassword produces the bcrypt hash stored for an account.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
