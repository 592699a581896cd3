package mockapi

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// demoUser is the single account the mock gateway accepts.
type demoUser struct {
	ID           int
	Username     string
	Email        string
	TenantID     int
	PasswordHash []byte
}

// Auth issues and validates the gateway's HS256 access tokens.
type Auth struct {
	secret []byte
	ttl    time.Duration
	users  map[string]demoUser
}

// NewAuth creates the token issuer with the demo account registered.
func NewAuth(secret string, ttl time.Duration) (*Auth, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	return &Auth{
		secret: []byte(secret),
		ttl:    ttl,
		users: map[string]demoUser{
			"demo": {
				ID:           1,
				Username:     "demo",
				Email:        "demo@example.com",
				TenantID:     demoTenantID,
				PasswordHash: hash,
			},
		},
	}, nil
}

// authenticate checks the credentials and returns the matching user.
func (a *Auth) authenticate(username, password string) (*demoUser, bool) {
	u, ok := a.users[username]
	if !ok {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil, false
	}
	return &u, true
}

// mint signs an access token for the user. Claims match the production
// gateway: sub is the user id as a string, plus username, email and
// tenant_id.
func (a *Auth) mint(u *demoUser) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       strconv.Itoa(u.ID),
		"username":  u.Username,
		"email":     u.Email,
		"tenant_id": u.TenantID,
		"iat":       now.Unix(),
		"exp":       now.Add(a.ttl).Unix(),
	})
	return token.SignedString(a.secret)
}

// validate parses and verifies a token, returning its claims.
func (a *Auth) validate(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
