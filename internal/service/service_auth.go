// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

// bcryptMaxPasswordBytes is the longest input bcrypt uses. Longer passwords
// are truncated to it, the same way existing hashes were produced.
const bcryptMaxPasswordBytes = 72

// bcryptPrefixes are the version prefixes of hashes produced by bcrypt
// implementations. Any other stored value is a legacy plaintext password.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	validator validators.Validator

	// passwordHashCost is the bcrypt cost used for new hashes.
	passwordHashCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	cost := cfg.PasswordHashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &authService{
		userRepository:   userRepository,
		validator:        validators.NewVaultValidator(),
		passwordHashCost: cost,
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		logger:           logger,
	}
}

// Signup creates a new user account.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrValidationMissingCredentials if the username or password is empty.
//   - ErrUsernameTaken if the username is already registered.
//   - A wrapped storage error for any other repository failure.
func (a *authService) Signup(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, credentials); err != nil {
		log.Error().Err(err).Str("username", credentials.Username).Msg("invalid signup data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrValidationMissingCredentials, err)
	}

	hash, err := a.hashPassword(credentials.Password)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{Username: credentials.Username, Password: hash})
	if errors.Is(err, store.ErrUsernameAlreadyExists) {
		log.Warn().Str("username", credentials.Username).Msg("username already taken")
		return models.User{}, ErrUsernameTaken
	}
	if err != nil {
		log.Err(err).Str("username", credentials.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return user, nil
}

// Login authenticates an existing user.
//
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
// A legacy plaintext password that matches is replaced by its bcrypt hash;
// a failure to store the upgrade is logged and does not fail the login.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, credentials); err != nil {
		log.Error().Err(err).Str("username", credentials.Username).Msg("invalid login data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrValidationMissingCredentials, err)
	}

	user, err := a.userRepository.FindUserByUsername(ctx, credentials.Username)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Warn().Str("username", credentials.Username).Msg("login for unknown user")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("username", credentials.Username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	legacy := !isBcryptHash(user.Password)
	if !verifyPassword(user.Password, credentials.Password) {
		log.Warn().Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	if legacy {
		a.upgradeLegacyPassword(ctx, user.UserID, credentials.Password)
	}

	return user, nil
}

// ChangePassword verifies oldPassword against the stored one and stores a
// bcrypt hash of newPassword.
func (a *authService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	req := models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := a.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if !verifyPassword(user.Password, oldPassword) {
		log.Warn().Int64("user_id", userID).Msg("wrong old password on password change")
		return ErrInvalidCredentials
	}

	hash, err := a.hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err = a.userRepository.UpdatePassword(ctx, userID, hash); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}
	log.Info().Int64("user_id", userID).Msg("account password changed")

	return nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), a.passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("password hashing failed: %w", err)
	}

	return string(hash), nil
}

func (a *authService) upgradeLegacyPassword(ctx context.Context, userID int64, password string) {
	log := logger.FromContext(ctx)

	hash, err := a.hashPassword(password)
	if err == nil {
		err = a.userRepository.UpdatePassword(ctx, userID, hash)
	}
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("legacy password upgrade failed")
		return
	}

	log.Info().Int64("user_id", userID).Msg("legacy password upgraded to bcrypt")
}

func isBcryptHash(stored string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(stored, p) {
			return true
		}
	}
	return false
}

// verifyPassword compares password against a bcrypt hash, or in constant
// time against a legacy plaintext value.
func verifyPassword(stored, password string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), bcryptInput(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxPasswordBytes {
		b = b[:bcryptMaxPasswordBytes]
	}
	return b
}
