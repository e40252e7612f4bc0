// Package auth provides account registration, credential verification and
// bearer-token issuance for the HTTP API. Tokens are HS256 JWTs carrying the
// account ID as subject.
package auth

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"stash/internal/config"
	"stash/internal/services"
	"stash/internal/store"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 64
	minPasswordLength = 8
)

// Authenticator registers users, verifies credentials and mints tokens.
type Authenticator struct {
	store      *store.Store
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

// New builds an authenticator from configuration.
func New(st *store.Store, cfg config.Auth) *Authenticator {
	ttl := time.Duration(cfg.TokenTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Authenticator{
		store:      st,
		secret:     []byte(cfg.JWTSecret),
		tokenTTL:   ttl,
		bcryptCost: cost,
		now:        time.Now,
	}
}

// Signup creates an account and signs the new user in, returning a token
// alongside the record. A taken username surfaces as ErrConflict.
func (a *Authenticator) Signup(ctx context.Context, username, password string) (string, *store.User, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return "", nil, err
	}
	if err := validatePassword(password); err != nil {
		return "", nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", nil, services.Wrap(nil, "auth", "signup", "hash password", err)
	}
	user, err := a.store.CreateUser(ctx, username, string(hashed))
	if err != nil {
		return "", nil, err
	}
	token, err := a.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login verifies credentials and returns a signed token. Unknown usernames
// and wrong passwords fail identically so the endpoint does not leak which
// accounts exist.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, *store.User, error) {
	user, err := a.store.UserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", nil, services.Wrap(nil, "auth", "login", "lookup user", err)
	}
	if user == nil {
		return "", nil, services.Wrap(services.ErrUnauthorized, "auth", "login", "invalid credentials", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", nil, services.Wrap(services.ErrUnauthorized, "auth", "login", "invalid credentials", nil)
	}

	token, err := a.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// tokenClaims mirrors the registered claim set with an explicit account ID so
// consumers do not have to parse the subject string.
type tokenClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

func (a *Authenticator) issueToken(user *store.User) (string, error) {
	now := a.now().UTC()
	claims := tokenClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   formatSubject(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", services.Wrap(nil, "auth", "issue token", "sign", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token, returning the account it was
// issued to.
func (a *Authenticator) Verify(ctx context.Context, tokenString string) (*store.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, services.Wrap(services.ErrUnauthorized, "auth", "verify", "unexpected signing method", nil)
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(func() time.Time { return a.now() }))
	if err != nil {
		return nil, services.Wrap(services.ErrUnauthorized, "auth", "verify", "invalid token", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok {
		return nil, services.Wrap(services.ErrUnauthorized, "auth", "verify", "unexpected claims", nil)
	}
	userID := claims.UserID
	if userID == 0 {
		parsed, err := parseSubject(claims.Subject)
		if err != nil {
			return nil, services.Wrap(services.ErrUnauthorized, "auth", "verify", "malformed subject", err)
		}
		userID = parsed
	}

	user, err := a.store.UserByID(ctx, userID)
	if err != nil {
		return nil, services.Wrap(nil, "auth", "verify", "lookup user", err)
	}
	if user == nil {
		return nil, services.Wrap(services.ErrUnauthorized, "auth", "verify", "account no longer exists", nil)
	}
	return user, nil
}

func formatSubject(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseSubject(subject string) (int64, error) {
	return strconv.ParseInt(subject, 10, 64)
}

func validateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return services.Wrap(services.ErrValidation, "auth", "signup", "username must be 3-64 characters", nil)
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return services.Wrap(services.ErrValidation, "auth", "signup", "username contains invalid characters", nil)
		}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return services.Wrap(services.ErrValidation, "auth", "signup", "password must be at least 8 characters", nil)
	}
	return nil
}
