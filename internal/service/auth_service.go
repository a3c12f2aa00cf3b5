package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"workoutapi/internal/auth"
	"workoutapi/internal/cache"
	apperrors "workoutapi/internal/errors"
	"workoutapi/internal/events"
	"workoutapi/internal/mail"
	"workoutapi/internal/model"
	"workoutapi/internal/repository"
)

const (
	bcryptCost      = 10
	profileCacheTTL = 5 * time.Minute
)

// MailDispatcher hands a message to the outbound mail pipeline without waiting
// for delivery.
type MailDispatcher interface {
	Dispatch(msg mail.Message) error
}

// AuthConfig carries the token lifetimes and the verification link format.
type AuthConfig struct {
	VerificationTTL  time.Duration
	SessionTTL       time.Duration
	VerificationLink func(token string) string
}

// SignupInput is the signup request.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// SignupResult is returned by Signup. Token is the raw verification token; the
// signup response still carries it.
type SignupResult struct {
	User        *model.User
	Token       string
	EmailQueued bool
}

// LoginInput is the login request.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult carries the session token and the public profile.
type LoginResult struct {
	Token   string
	Profile model.Profile
}

// AuthService covers signup, email verification, login and account management.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*SignupResult, error)
	Verify(ctx context.Context, token string) error
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, password string) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	// AuthenticateSession resolves a session token to its user id.
	AuthenticateSession(ctx context.Context, token string) (uuid.UUID, error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	sessions   auth.SessionStoreInterface
	mailer     MailDispatcher
	publisher  events.Publisher
	cache      *cache.Client
	logger     zerolog.Logger
	cfg        AuthConfig
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	jwtService *auth.JWTService,
	sessions auth.SessionStoreInterface,
	mailer MailDispatcher,
	publisher events.Publisher,
	cache *cache.Client,
	logger zerolog.Logger,
	cfg AuthConfig,
) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		sessions:   sessions,
		mailer:     mailer,
		publisher:  publisher,
		cache:      cache,
		logger:     logger.With().Str("component", "auth").Logger(),
		cfg:        cfg,
	}
}

func (s *authService) profileKey(id uuid.UUID) string {
	return fmt.Sprintf("user:profile:%s", id.String())
}

// Signup creates an unverified account and queues the verification email.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: all fields are required", apperrors.ErrValidation)
	}
	if len(in.Email) > model.MaxEmailLength || len(in.Username) > model.MaxUsernameLength {
		return nil, fmt.Errorf("%w: email or username is too long", apperrors.ErrValidation)
	}
	if !model.EmailPattern.MatchString(in.Email) {
		return nil, fmt.Errorf("%w: email is invalid", apperrors.ErrValidation)
	}

	// The unique index decides races; this only avoids hashing for known emails.
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check account existence: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	token, err := s.jwtService.Issue(auth.KindVerification, in.Email, s.cfg.VerificationTTL)
	if err != nil {
		return nil, fmt.Errorf("issue verification token: %w", err)
	}

	expiresAt := time.Now().Add(s.cfg.VerificationTTL)
	user := &model.User{
		Username:              in.Username,
		Email:                 in.Email,
		PasswordHash:          string(hashedPassword),
		IsEmailVerified:       false,
		VerificationToken:     &token,
		VerificationExpiresAt: &expiresAt,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	queued := s.queueVerificationEmail(user, token)
	s.publish(ctx, events.Event{
		Type:    events.UserSignedUp,
		Key:     user.ID.String(),
		Payload: user.Profile(),
	})

	return &SignupResult{User: user, Token: token, EmailQueued: queued}, nil
}

// queueVerificationEmail never fails the signup: the account already exists and
// the failure is logged for follow-up.
func (s *authService) queueVerificationEmail(user *model.User, token string) bool {
	msg, err := mail.VerificationMessage(user.Email, s.cfg.VerificationLink(token))
	if err == nil {
		err = s.mailer.Dispatch(msg)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("verification email not queued")
		return false
	}
	return true
}

// Verify consumes a verification token. Lookup is by stored value, so tokens
// stay valid across secret rotation but are strictly single use and expire
// after the verification TTL.
func (s *authService) Verify(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", apperrors.ErrValidation)
	}

	user, err := s.users.FindByVerificationToken(ctx, token)
	if err != nil {
		return fmt.Errorf("find by token: %w", err)
	}
	if user == nil {
		return apperrors.ErrInvalidOrExpiredToken
	}
	if user.VerificationExpiresAt != nil && time.Now().After(*user.VerificationExpiresAt) {
		return apperrors.ErrInvalidOrExpiredToken
	}

	ok, err := s.users.MarkVerified(ctx, user.ID, token)
	if err != nil {
		return err
	}
	if !ok {
		// consumed by a concurrent request between lookup and update
		return apperrors.ErrInvalidOrExpiredToken
	}

	_ = s.cache.Delete(ctx, s.profileKey(user.ID))
	s.publish(ctx, events.Event{Type: events.UserVerified, Key: user.ID.String()})
	return nil
}

// Login checks the username/email/password triple and issues a session token.
// Unknown email and username mismatch are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("find by email: %w", err)
	}
	if user == nil || user.Username != in.Username {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return nil, apperrors.ErrNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(auth.KindSession, user.ID.String(), s.cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	return &LoginResult{Token: token, Profile: user.Profile()}, nil
}

// GetProfile returns the account with credential fields stripped by its JSON
// shape. Profiles are cached briefly.
func (s *authService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.profileKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %w", apperrors.ErrNotFound)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.profileKey(id), payload, profileCacheTTL)
	}
	return user, nil
}

// UpdatePassword replaces the hash without asking for the current password.
// Updating an unknown id is not an error. Sessions issued earlier are revoked.
func (s *authService) UpdatePassword(ctx context.Context, id uuid.UUID, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", apperrors.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	found, err := s.users.UpdateFields(ctx, id, map[string]interface{}{"password_hash": string(hashedPassword)})
	if err != nil {
		return err
	}
	if found {
		s.revokeSessions(ctx, id)
	}
	_ = s.cache.Delete(ctx, s.profileKey(id))
	return nil
}

// DeleteAccount removes the account. Deleting an unknown id succeeds.
func (s *authService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.revokeSessions(ctx, id)
	_ = s.cache.Delete(ctx, s.profileKey(id))
	s.publish(ctx, events.Event{Type: events.UserDeleted, Key: id.String()})
	return nil
}

func (s *authService) AuthenticateSession(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := s.jwtService.Verify(token, auth.KindSession)
	if err != nil {
		return uuid.Nil, err
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil || claims.IssuedAt == nil {
		return uuid.Nil, apperrors.ErrInvalidOrExpiredToken
	}
	revoked, _ := s.sessions.IsRevoked(ctx, userID, claims.IssuedAtTime())
	if revoked {
		return uuid.Nil, apperrors.ErrInvalidOrExpiredToken
	}
	return userID, nil
}

func (s *authService) revokeSessions(ctx context.Context, id uuid.UUID) {
	if err := s.sessions.RevokeSessions(ctx, id, time.Now(), s.cfg.SessionTTL); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id.String()).Msg("session revocation not recorded")
	}
}

func (s *authService) publish(ctx context.Context, evt events.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn().Err(err).Str("event", evt.Type).Msg("event not published")
	}
}
