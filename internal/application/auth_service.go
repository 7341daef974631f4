package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/livity/realestate-api/internal/domain/entity"
	repo "github.com/livity/realestate-api/internal/domain/repository"
	"github.com/livity/realestate-api/pkg/helpers"
	"github.com/livity/realestate-api/pkg/mailer"
	"github.com/livity/realestate-api/pkg/mailer/templates"
)

// AuthOptions configures an AuthService. Denylist and Mail are optional.
type AuthOptions struct {
	TTL               time.Duration
	UnifySigninErrors bool
	Denylist          Revoker
	Mail              EmailPublisher
	Brand             templates.Brand
	Logger            *logrus.Logger
}

// AuthService handles signup, signin and signout.
type AuthService struct {
	users  repo.UserRepository
	hasher helpers.PasswordHasher
	tokens TokenCodec
	opts   AuthOptions
}

func NewAuthService(users repo.UserRepository, hasher helpers.PasswordHasher, tokens TokenCodec, opts AuthOptions) *AuthService {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &AuthService{users: users, hasher: hasher, tokens: tokens, opts: opts}
}

type SignupInput struct {
	Username string
	Email    string
	Phone    string
	Password string
}

func (in SignupInput) normalized() SignupInput {
	return SignupInput{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:    strings.TrimSpace(in.Phone),
		Password: in.Password,
	}
}

// Signup creates a principal. It does not establish a session.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	in = in.normalized()
	if err := required("username", in.Username, "email", in.Email, "phone", in.Phone, "password", in.Password); err != nil {
		return nil, err
	}
	if len(in.Password) > helpers.MaxPasswordBytes {
		return nil, invalid(fmt.Sprintf("Password must be at most %d bytes", helpers.MaxPasswordBytes), "password")
	}

	if err := s.ensureFree(ctx, "username", s.users.GetByUsername, in.Username); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, "email", s.users.GetByEmail, in.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		AvatarURL:    entity.DefaultAvatarURL,
		Favorites:    []string{},
	}
	// the unique constraints still decide races between concurrent signups
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	helpers.LogInfo(s.opts.Logger, "user signed up", logrus.Fields{"user_id": u.ID})
	enqueueEmail(ctx, s.opts.Mail, s.opts.Logger, mailer.EmailJob{
		To:       u.Email,
		Template: templates.Welcome,
		Data:     templates.NewWelcomeData(s.opts.Brand, u.Username, u.Email),
	})
	return u, nil
}

func (s *AuthService) ensureFree(ctx context.Context, field string, lookup func(context.Context, string) (*entity.User, error), value string) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return fmt.Errorf("%s %w", field, ErrConflict)
	case errors.Is(err, ErrNotFound):
		return nil
	default:
		return fmt.Errorf("check %s: %w", field, err)
	}
}

// SigninResult is a fresh session for a principal.
type SigninResult struct {
	Token     string
	ExpiresAt time.Time
	User      entity.PublicUser
}

// Signin verifies credentials and issues a session token.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*SigninResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := required("email", email, "password", password); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		if s.opts.UnifySigninErrors {
			return nil, ErrInvalidCredential
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, ErrInvalidCredential
	}

	tok, err := s.tokens.Issue(u.ID, s.opts.TTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &SigninResult{Token: tok.Token, ExpiresAt: tok.ExpiresAt, User: u.Public()}, nil
}

// Signout revokes token until its natural expiry when a denylist is
// configured. Tokens that no longer verify need no revocation.
func (s *AuthService) Signout(ctx context.Context, token string) error {
	if token == "" || s.opts.Denylist == nil {
		return nil
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}
	if err := s.opts.Denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
