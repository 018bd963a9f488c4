// Package auth implements registration, login, email verification and
// password reset on top of the user and verification stores.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/pkg/httperr"
	"github.com/Yahya-git/To-Do-List-MS/pkg/password"
	"github.com/Yahya-git/To-Do-List-MS/pkg/token"
	"github.com/Yahya-git/To-Do-List-MS/users-service/internal/model"
)

type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (*model.User, error)
	Update(ctx context.Context, id int, email, passwordHash *string) (*model.User, error)
	SetVerified(ctx context.Context, id int, verified bool) error
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type VerificationStore interface {
	Upsert(ctx context.Context, userID, token int, expiresAt time.Time) error
	GetByToken(ctx context.Context, token int) (*model.Verification, error)
	Delete(ctx context.Context, userID int) error
}

type MailSender interface {
	SendVerification(to string, token int) error
	SendPasswordReset(to string, userID, token int) error
	SendTemporaryPassword(to, tempPassword string) error
}

type Service struct {
	users         UserStore
	verifications VerificationStore
	mail          MailSender
	jwtSecret     string
	jwtExpiry     time.Duration
	tokenExpiry   time.Duration
	tempPwLen     int
	logger        *zap.Logger
}

func NewService(users UserStore, verifications VerificationStore, mail MailSender, jwtSecret string, jwtExpiry, tokenExpiry time.Duration, tempPwLen int, logger *zap.Logger) *Service {
	return &Service{
		users:         users,
		verifications: verifications,
		mail:          mail,
		jwtSecret:     jwtSecret,
		jwtExpiry:     jwtExpiry,
		tokenExpiry:   tokenExpiry,
		tempPwLen:     tempPwLen,
		logger:        logger,
	}
}

// newToken returns a random six digit verification token.
func newToken() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return 0, fmt.Errorf("generate token: %w", err)
	}
	return int(n.Int64()) + 100000, nil
}

// issueVerification stores a fresh token for the user and mails it. The
// upsert invalidates any previously issued token.
func (s *Service) issueVerification(ctx context.Context, user *model.User) error {
	t, err := newToken()
	if err != nil {
		return err
	}
	if err := s.verifications.Upsert(ctx, user.ID, t, time.Now().Add(s.tokenExpiry)); err != nil {
		return err
	}
	return s.mail.SendVerification(user.Email, t)
}

func (s *Service) Register(ctx context.Context, email, plainPassword string) (*model.User, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Create(ctx, email, hash)
	if err != nil {
		return nil, err
	}

	if err := s.issueVerification(ctx, user); err != nil {
		// The account exists; login retries the verification mail.
		s.logger.Warn("Failed to send verification mail",
			zap.Int("user_id", user.ID),
			zap.Error(err),
		)
	}
	return user, nil
}

// Login exchanges credentials for a signed bearer token. Unverified users
// get a fresh verification mail instead of a token.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return "", httperr.ErrInvalidCreds
		}
		return "", err
	}
	if !password.Check(plainPassword, user.Password) {
		return "", httperr.ErrInvalidCreds
	}
	if !user.IsVerified {
		if err := s.issueVerification(ctx, user); err != nil {
			s.logger.Warn("Failed to send verification mail",
				zap.Int("user_id", user.ID),
				zap.Error(err),
			)
		}
		return "", httperr.ErrUnverifiedEmail
	}
	return token.Generate(user.ID, user.Email, s.jwtSecret, s.jwtExpiry)
}

func (s *Service) VerifyEmail(ctx context.Context, tokenValue int) error {
	v, err := s.verifications.GetByToken(ctx, tokenValue)
	if err != nil {
		return err
	}
	if time.Now().After(v.ExpiresAt) {
		_ = s.verifications.Delete(ctx, v.UserID)
		return httperr.ErrFalseToken
	}
	if err := s.users.SetVerified(ctx, v.UserID, true); err != nil {
		return err
	}
	if err := s.verifications.Delete(ctx, v.UserID); err != nil {
		s.logger.Warn("Failed to delete spent verification token", zap.Int("user_id", v.UserID), zap.Error(err))
	}
	s.logger.Info("Email verified", zap.Int("user_id", v.UserID))
	return nil
}

// UpdateProfile lets a user change their own email or password. An email
// change unverifies the account until the new address is confirmed.
func (s *Service) UpdateProfile(ctx context.Context, currentID, id int, email, plainPassword *string) (*model.User, error) {
	if id != currentID {
		return nil, httperr.ErrUnauthorized
	}

	var hash *string
	if plainPassword != nil {
		h, err := password.Hash(*plainPassword)
		if err != nil {
			return nil, err
		}
		hash = &h
	}

	user, err := s.users.Update(ctx, id, email, hash)
	if err != nil {
		return nil, err
	}

	if email != nil && user.IsVerified {
		if err := s.users.SetVerified(ctx, id, false); err != nil {
			return nil, err
		}
		user.IsVerified = false
		if err := s.issueVerification(ctx, user); err != nil {
			s.logger.Warn("Failed to send verification mail",
				zap.Int("user_id", user.ID),
				zap.Error(err),
			)
		}
	}
	return user, nil
}

func (s *Service) RequestPasswordReset(ctx context.Context, userID int) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsVerified {
		return httperr.ErrUnverifiedEmail
	}
	if user.IsOAuth {
		return httperr.ErrOAuthRestricted
	}

	t, err := newToken()
	if err != nil {
		return err
	}
	if err := s.verifications.Upsert(ctx, user.ID, t, time.Now().Add(s.tokenExpiry)); err != nil {
		return err
	}
	return s.mail.SendPasswordReset(user.Email, user.ID, t)
}

// ResetPassword trades a valid reset token for a mailed temporary password.
func (s *Service) ResetPassword(ctx context.Context, userID, tokenValue int) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsOAuth {
		return httperr.ErrOAuthRestricted
	}

	v, err := s.verifications.GetByToken(ctx, tokenValue)
	if err != nil {
		return err
	}
	if v.UserID != userID || time.Now().After(v.ExpiresAt) {
		return httperr.ErrFalseToken
	}

	tempPassword, err := password.GenerateTemporary(s.tempPwLen)
	if err != nil {
		return err
	}
	hash, err := password.Hash(tempPassword)
	if err != nil {
		return err
	}
	if _, err := s.users.Update(ctx, userID, nil, &hash); err != nil {
		return err
	}
	if err := s.verifications.Delete(ctx, userID); err != nil {
		s.logger.Warn("Failed to delete spent reset token", zap.Int("user_id", userID), zap.Error(err))
	}

	s.logger.Info("Password reset", zap.Int("user_id", userID))
	return s.mail.SendTemporaryPassword(user.Email, tempPassword)
}
