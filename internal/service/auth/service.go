package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/service/audit"
	"github.com/jwalitptl/medclinic-admin/pkg/auth"
	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
	"github.com/jwalitptl/medclinic-admin/pkg/logger"
	"github.com/jwalitptl/medclinic-admin/pkg/reqctx"
	"github.com/jwalitptl/medclinic-admin/pkg/security"
)

const (
	defaultMaxLoginAttempts = 5
	defaultLockoutDuration  = 15 * time.Minute
)

// UserFinder looks users up by login name.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type Config struct {
	MaxLoginAttempts int
	LockoutDuration  time.Duration
}

// Service is the authentication gate. Tokens are stateless JWTs; logout
// revokes a token id until the token would have expired anyway.
type Service struct {
	users    UserFinder
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
	auditor  audit.Recorder
	log      *logger.Logger
	cfg      Config
	revoked  *cache.Cache
	attempts *cache.Cache
	now      func() time.Time
}

func NewService(cfg Config, users UserFinder, jwtSvc auth.JWTService, hasher security.PasswordHasher, auditor audit.Recorder, log *logger.Logger) *Service {
	if cfg.MaxLoginAttempts <= 0 {
		cfg.MaxLoginAttempts = defaultMaxLoginAttempts
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = defaultLockoutDuration
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		users:    users,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
		auditor:  auditor,
		log:      log.With("auth"),
		cfg:      cfg,
		revoked:  cache.New(cache.NoExpiration, 10*time.Minute),
		attempts: cache.New(cfg.LockoutDuration, time.Minute),
		now:      time.Now,
	}
}

func (s *Service) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	key := strings.ToLower(strings.TrimSpace(username))
	if s.locked(key) {
		return nil, apperrors.Unauthorized(model.ErrAccountLocked)
	}

	user, err := s.users.FindByUsername(ctx, key)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			s.recordFailure(key)
			return nil, apperrors.Unauthorized(model.ErrInvalidCredentials)
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.recordFailure(key)
		s.log.Warn("login failed", "username", key)
		return nil, apperrors.Unauthorized(model.ErrInvalidCredentials)
	}
	if user.Status != model.StatusActive {
		return nil, apperrors.Unauthorized(model.ErrInactiveUser)
	}
	s.attempts.Delete(key)

	token, claims, err := s.jwtSvc.GenerateAccessToken(user.ID, user.Username, user.RoleID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if s.auditor != nil {
		s.auditor.Record(reqctx.WithActor(ctx, user.ID), model.AuditActionLogin, model.AuditEntityUser, user.ID)
	}
	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		User:        user.Public(),
	}, nil
}

// Authenticate returns the session behind a valid, unrevoked token.
func (s *Service) Authenticate(token string) (*model.Session, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	if _, revoked := s.revoked.Get(claims.ID); revoked {
		return nil, apperrors.Unauthorized(model.ErrTokenRevoked)
	}
	return &model.Session{
		TokenID:   claims.ID,
		UserID:    claims.UserID,
		Username:  claims.Username,
		RoleID:    claims.RoleID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *Service) IsAuthenticated(token string) bool {
	_, err := s.Authenticate(token)
	return err == nil
}

// Logout revokes token. Logging out an already revoked token succeeds.
func (s *Service) Logout(ctx context.Context, token string) error {
	session, err := s.Authenticate(token)
	if err != nil {
		if errors.Is(err, model.ErrTokenRevoked) {
			return nil
		}
		return err
	}

	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	s.revoked.Set(session.TokenID, struct{}{}, ttl)

	if s.auditor != nil {
		s.auditor.Record(reqctx.WithActor(ctx, session.UserID), model.AuditActionLogout, model.AuditEntityUser, session.UserID)
	}
	return nil
}

func (s *Service) locked(key string) bool {
	n, ok := s.attempts.Get(key)
	return ok && n.(int) >= s.cfg.MaxLoginAttempts
}

func (s *Service) recordFailure(key string) {
	if err := s.attempts.Add(key, 1, cache.DefaultExpiration); err != nil {
		_, _ = s.attempts.IncrementInt(key, 1)
	}
}
