package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/inkwell/inkwell-server/internal/logger"
	"github.com/inkwell/inkwell-server/internal/model"
)

const (
	maxUsernameLength = 80
	maxEmailLength    = 120
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes, so longer inputs are rejected
	// instead of silently truncated.
	maxPasswordLength = 72
)

// Auth is the identity service: registration, credential authentication and
// caller resolution from access tokens.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenService *TokenService
	logger       *logger.Logger
}

// NewAuth creates the identity service.
func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register creates a new active user with a hashed credential. Username and
// email must each be globally unique; the store's unique constraints back
// the pre-checks, so concurrent registrations of the same name still fail
// with a duplicate error rather than a constraint leak.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	params.Normalize()

	if err := validateRegistration(params); err != nil {
		return model.User{}, err
	}

	_, err := a.userStore.GetByUsername(ctx, params.Username)
	if err == nil {
		return model.User{}, model.NewDuplicateError("username")
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to check username", "username", params.Username, "error", err.Error())
		return model.User{}, model.NewInternalError(err)
	}

	_, err = a.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		return model.User{}, model.NewDuplicateError("email")
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to check email", "email", params.Email, "error", err.Error())
		return model.User{}, model.NewInternalError(err)
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password", "error", err.Error())
		return model.User{}, model.NewInternalError(err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Bio:          params.Bio,
		IsActive:     true,
	})
	if err != nil {
		var dup *model.DuplicateError
		if errors.As(err, &dup) {
			return model.User{}, model.NewDuplicateError(dup.Field)
		}
		a.logger.Error("Auth service: failed to create user", "username", params.Username, "error", err.Error())
		return model.User{}, model.NewInternalError(err)
	}

	a.logger.Info("Auth service: user registered", "user_id", user.ID, "username", user.Username)

	return user, nil
}

// Authenticate matches identifier against username first, then email, checks
// the account state and credential, and issues a fresh token pair. No
// session state is stored; every call issues independent tokens.
func (a *Auth) Authenticate(ctx context.Context, identifier, password string) (model.User, TokenPair, error) {
	user, err := a.userStore.GetByUsername(ctx, identifier)
	if errors.Is(err, model.ErrNotFound) {
		user, err = a.userStore.GetByEmail(ctx, identifier)
	}
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, TokenPair{}, model.NewNotFoundError("user")
	}
	if err != nil {
		a.logger.Error("Auth service: failed to look up user", "identifier", identifier, "error", err.Error())
		return model.User{}, TokenPair{}, model.NewInternalError(err)
	}

	if !user.IsActive {
		return model.User{}, TokenPair{}, model.NewDisabledError()
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return model.User{}, TokenPair{}, model.NewUnauthorizedError("invalid credentials")
	}

	pair, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens", "user_id", user.ID, "error", err.Error())
		return model.User{}, TokenPair{}, model.NewInternalError(err)
	}

	a.logger.Info("Auth service: user authenticated", "user_id", user.ID)

	return user, pair, nil
}

// GetUser returns the public profile behind a user id. Deactivated accounts
// are indistinguishable from absent ones.
func (a *Auth) GetUser(ctx context.Context, id int64) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.NewNotFoundError("user")
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user", "user_id", id, "error", err.Error())
		return model.User{}, model.NewInternalError(err)
	}
	if !user.IsActive {
		return model.User{}, model.NewNotFoundError("user")
	}
	return user, nil
}

// ResolveCaller verifies an access token and loads its subject. Any
// verification failure, unknown subject or deactivated account resolves to
// no caller rather than an error, so anonymous reads can proceed; only
// store faults surface as errors.
func (a *Auth) ResolveCaller(ctx context.Context, tokenString string) (*model.User, error) {
	if tokenString == "" {
		return nil, nil
	}

	userID, err := a.tokenService.GetUserID(ctx, tokenString)
	if err != nil {
		a.logger.Debug("Auth service: token rejected", "error", err.Error())
		return nil, nil
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		a.logger.Error("Auth service: failed to load caller", "user_id", userID, "error", err.Error())
		return nil, model.NewInternalError(err)
	}

	if !user.IsActive {
		return nil, nil
	}

	return &user, nil
}

func validateRegistration(params model.RegisterParams) error {
	if params.Username == "" {
		return model.NewValidationError("username is required")
	}
	if utf8.RuneCountInString(params.Username) > maxUsernameLength {
		return model.NewValidationError("username must be at most %d characters", maxUsernameLength)
	}
	if strings.ContainsAny(params.Username, " \t\n") {
		return model.NewValidationError("username must not contain whitespace")
	}
	if err := validateEmail(params.Email); err != nil {
		return err
	}
	if utf8.RuneCountInString(params.Password) < minPasswordLength {
		return model.NewValidationError("password must be at least %d characters", minPasswordLength)
	}
	// The ceiling stays byte-counted: bcrypt hashes at most 72 bytes.
	if len(params.Password) > maxPasswordLength {
		return model.NewValidationError("password must be at most %d bytes", maxPasswordLength)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return model.NewValidationError("email is required")
	}
	if utf8.RuneCountInString(email) > maxEmailLength {
		return model.NewValidationError("email must be at most %d characters", maxEmailLength)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return model.NewValidationError("email %q is malformed", email)
	}
	return nil
}
