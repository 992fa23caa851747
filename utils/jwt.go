package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/vnkhanh/skillplus-backend/models"
)

// Session is the authenticated caller, decoded from a bearer token and passed
// explicitly through the request context.
type Session struct {
	UserID    uuid.UUID       `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	FullName  *string         `json:"full_name"`
	PhotoURL  *string         `json:"photo_url"`
	Role      models.UserRole `json:"role"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

type sessionClaims struct {
	UserID   string          `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	FullName *string         `json:"full_name,omitempty"`
	PhotoURL *string         `json:"photo_url,omitempty"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret   []byte
	adminTTL time.Duration
	userTTL  time.Duration
	now      func() time.Time
}

func NewTokenManager(secret string, adminTTL, userTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:   []byte(secret),
		adminTTL: adminTTL,
		userTTL:  userTTL,
		now:      time.Now,
	}
}

// TTL: admin sessions are short lived.
func (m *TokenManager) TTL(role models.UserRole) time.Duration {
	if role == models.RoleAdmin {
		return m.adminTTL
	}
	return m.userTTL
}

func (m *TokenManager) Generate(u *models.User) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.TTL(u.Role))
	claims := sessionClaims{
		UserID:   u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		PhotoURL: u.PhotoURL,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}
	return token, exp, nil
}

func (m *TokenManager) Verify(tokenStr string) (*Session, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "token subject")
	}
	s := &Session{
		UserID:   id,
		Username: claims.Username,
		Email:    claims.Email,
		FullName: claims.FullName,
		PhotoURL: claims.PhotoURL,
		Role:     claims.Role,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}
