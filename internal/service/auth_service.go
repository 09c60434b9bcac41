package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"google.golang.org/api/idtoken"

	"github.com/foundit/foundit-api/internal/domain"
	"github.com/foundit/foundit-api/internal/repository/ports"
	"github.com/foundit/foundit-api/internal/util"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrPasswordTooWeak      = errors.New("password does not meet requirements")
	ErrPasswordMismatch     = errors.New("current password does not match")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailAlreadyUsed     = errors.New("email is already registered")
	ErrUsernameAlreadyTaken = errors.New("username is already taken")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrResetTokenInvalid    = errors.New("invalid reset token")
	ErrResetTokenExpired    = errors.New("reset token expired")
	ErrResetDeliveryFailed  = errors.New("unable to deliver reset email")
	ErrForbidden            = errors.New("not allowed")
)

// PasswordResetSender delivers the plaintext reset token out of band.
type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email, resetURL string) error
}

// AuthResult bundles the sanitized user with the freshly minted session
// credentials.
type AuthResult struct {
	User             *domain.User
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type AuthService struct {
	users  ports.UserRepository
	resets ports.PasswordResetRepository
	mailer PasswordResetSender
	jwt    *util.JWTManager

	googleAudience string
	resetTTL       time.Duration
	resetURLBase   string
	now            func() time.Time

	validateGoogleToken func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

func NewAuthService(
	users ports.UserRepository,
	resets ports.PasswordResetRepository,
	mailer PasswordResetSender,
	jwtManager *util.JWTManager,
	googleAudience string,
	resetTTL time.Duration,
	resetURLBase string,
) *AuthService {
	return &AuthService{
		users:               users,
		resets:              resets,
		mailer:              mailer,
		jwt:                 jwtManager,
		googleAudience:      googleAudience,
		resetTTL:            resetTTL,
		resetURLBase:        strings.TrimRight(resetURLBase, "/"),
		now:                 time.Now,
		validateGoogleToken: idtoken.Validate,
	}
}

func (s *AuthService) Register(ctx context.Context, username, fullName, email, password string) (*AuthResult, error) {
	username = normalizeKey(username)
	email = normalizeKey(email)
	fullName = strings.TrimSpace(fullName)

	if username == "" || fullName == "" {
		return nil, fmt.Errorf("%w: username and full name are required", ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, username, fullName, email, hash, salt)
	if err != nil {
		return nil, translateUniqueViolation(err)
	}

	return s.issueTokens(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeKey(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(user)
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, rawIDToken string) (*AuthResult, error) {
	payload, err := s.validateGoogleToken(ctx, rawIDToken, s.googleAudience)
	if err != nil {
		return nil, ErrInvalidToken
	}
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if normalizeKey(email) == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.users.UpsertByEmail(ctx, normalizeKey(email), strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh access/refresh pair.
// Tokens are stateless; a refresh token that parses and still maps to an
// existing user is all the proof required.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return s.issueTokens(user)
}

func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.jwt.ParseAccessToken(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, username *string) (*domain.User, error) {
	if fullName != nil {
		trimmed := strings.TrimSpace(*fullName)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: full name cannot be blank", ErrValidation)
		}
		fullName = &trimmed
	}
	if username != nil {
		normalized := normalizeKey(*username)
		if normalized == "" {
			return nil, fmt.Errorf("%w: username cannot be blank", ErrValidation)
		}
		username = &normalized
	}

	user, err := s.users.UpdateProfile(ctx, userID, fullName, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, translateUniqueViolation(err)
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if err := util.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidCredentials
		}
		return err
	}
	if len(user.PasswordHash) > 0 && !util.VerifyPassword(currentPassword, user.PasswordSalt, user.PasswordHash) {
		return ErrPasswordMismatch
	}

	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash, salt)
}

// RequestPasswordReset supersedes any pending token for the account, mints a
// new one and emails the plaintext. A mailer failure retires the just-issued
// token so a message that never reached the user cannot linger as a live
// credential.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeKey(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.resets.ConsumeByUser(ctx, user.ID); err != nil {
		return err
	}

	plaintext, digest, err := util.GenerateResetToken()
	if err != nil {
		return err
	}
	reset, err := s.resets.Create(ctx, user.ID, digest, s.now().Add(s.resetTTL))
	if err != nil {
		return err
	}

	if s.mailer == nil {
		return ErrResetDeliveryFailed
	}
	if err := s.mailer.SendPasswordReset(ctx, user.Email, s.resetURL(plaintext)); err != nil {
		if markErr := s.resets.MarkConsumed(ctx, reset.ID); markErr != nil {
			return markErr
		}
		return fmt.Errorf("%w: %v", ErrResetDeliveryFailed, err)
	}
	return nil
}

// ConfirmPasswordReset validates a presented token and rewrites the stored
// password hash. Stale tokens are retired lazily here rather than by a
// background sweep.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if err := util.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return ErrResetTokenInvalid
	}

	reset, err := s.resets.FindPendingByTokenHash(ctx, util.HashResetToken(token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrResetTokenInvalid
		}
		return err
	}
	if reset.Expired(s.now()) {
		if err := s.resets.MarkConsumed(ctx, reset.ID); err != nil {
			return err
		}
		return ErrResetTokenExpired
	}

	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, reset.UserID, hash, salt); err != nil {
		return err
	}
	return s.resets.MarkConsumed(ctx, reset.ID)
}

func (s *AuthService) issueTokens(user *domain.User) (*AuthResult, error) {
	access, accessExp, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.FullName)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:             user,
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *AuthService) resetURL(token string) string {
	if s.resetURLBase == "" {
		return token
	}
	return s.resetURLBase + "/reset-password/" + token
}

// translateUniqueViolation maps a Postgres duplicate-key error onto the
// conflict sentinel for whichever identity column collided. The constraint is
// the sole authority on duplicates; there is no read-before-write check.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	if strings.Contains(pgErr.ConstraintName, "username") {
		return ErrUsernameAlreadyTaken
	}
	return ErrEmailAlreadyUsed
}

func normalizeKey(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
