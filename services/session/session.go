// Package session replaces the old client's ambient global auth state with
// an explicit session object: hydrated from the store on demand, torn down
// on logout.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"laundrify/gateway"
	"laundrify/models"
	"laundrify/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "session:"

// DefaultSessionTTL applies when the backend token carries no usable expiry.
const DefaultSessionTTL = 24 * time.Hour

// ErrNotAuthenticated means no live session exists for the presented token.
var ErrNotAuthenticated = errors.New("not authenticated")

// Service is the explicit auth lifecycle: login, hydrate, logout.
type Service interface {
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	Hydrate(ctx context.Context, token string) (*models.Session, error)
	Logout(ctx context.Context, token string) error
}

type DefaultSessionService struct {
	Users  gateway.UserGateway
	Store  *redis.Client
	Logger *zap.Logger
}

func (s *DefaultSessionService) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	token, user, err := s.Users.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	sess := &models.Session{
		Token:     token,
		User:      *user,
		ExpiresAt: sessionExpiry(token),
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *DefaultSessionService) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	return s.Users.Register(ctx, reg)
}

// Hydrate restores the session for a token. On a store miss it falls back
// to the backend account endpoint and re-persists, matching the old
// client's fetch-user-on-startup behavior. A backend rejection tears the
// session down.
func (s *DefaultSessionService) Hydrate(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	data, err := s.Store.Get(ctx, sessionKeyPrefix+utils.HashToken(token)).Result()
	if err == nil {
		var sess models.Session
		if err := json.Unmarshal([]byte(data), &sess); err == nil {
			return &sess, nil
		}
	}

	user, err := s.Users.Account(gateway.WithToken(ctx, token))
	if err != nil {
		if logoutErr := s.Logout(ctx, token); logoutErr != nil {
			s.Logger.Warn("failed to tear down rejected session", zap.Error(logoutErr))
		}
		return nil, ErrNotAuthenticated
	}

	sess := &models.Session{
		Token:     token,
		User:      *user,
		ExpiresAt: sessionExpiry(token),
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Logout clears the stored session. Idempotent.
func (s *DefaultSessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Store.Del(ctx, sessionKeyPrefix+utils.HashToken(token)).Err()
}

func (s *DefaultSessionService) save(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: failed to marshal session: %w", err)
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	key := sessionKeyPrefix + utils.HashToken(sess.Token)
	if err := s.Store.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("session: failed to store session: %w", err)
	}
	return nil
}

// sessionExpiry reads the expiry claim from the backend token when present.
func sessionExpiry(token string) time.Time {
	if exp, err := utils.TokenExpiry(token); err == nil {
		return exp
	}
	return time.Now().Add(DefaultSessionTTL)
}
