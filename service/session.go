package service

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"store-service/cache"
	"store-service/model"
)

type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
}

// SessionManager issues HS256 session tokens and tracks revoked ones until
// they would have expired anyway.
type SessionManager struct {
	secret  []byte
	ttl     time.Duration
	revoked Cache
	now     func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration, revoked Cache) *SessionManager {
	return &SessionManager{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}
}

func (m *SessionManager) Issue(userID uint) (string, *Session, error) {
	now := m.now()
	session := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(m.ttl).Truncate(time.Second),
	}

	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to sign session")
	}
	return token, session, nil
}

func (m *SessionManager) Parse(ctx context.Context, token string) (*Session, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, model.ErrInvalidSession
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || claims.ID == "" {
		return nil, model.ErrInvalidSession
	}

	_, err = m.revoked.Get(ctx, cache.SessionRevokedKey(claims.ID))
	switch {
	case err == nil:
		return nil, model.ErrInvalidSession
	case !errors.Is(err, cache.ErrMiss):
		return nil, errors.Wrap(err, "failed to check session revocation")
	}

	return &Session{
		ID:        claims.ID,
		UserID:    uint(userID),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (m *SessionManager) Revoke(ctx context.Context, s *Session) error {
	ttl := s.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	return m.revoked.Set(ctx, cache.SessionRevokedKey(s.ID), []byte("1"), ttl)
}
