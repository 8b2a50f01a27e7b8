// Package services contains application services for the shopcore client.
// This file defines the auth orchestrator: signup, signin, logout, and
// session restoration, composing the user directory and the session state.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shopcore/internal/client/models"
	"github.com/dmitrijs2005/shopcore/internal/common"
	"github.com/dmitrijs2005/shopcore/internal/logging"
)

// Session is the result of a session check: the persisted flag reconciled
// against the stored user snapshot.
type Session struct {
	SignedIn bool
	User     *models.UserRecord
}

// AuthService defines the authentication entry points for the UI layer.
//
// Contract:
//   - CheckSession: never fails; any storage problem degrades to signed-out.
//   - SignUp: validates, registers, and signs the new user in.
//   - SignIn: verifies credentials and signs the user in.
//   - Logout: clears the session and wipes the local directory.
//
// The methods may be invoked concurrently by the UI; the underlying
// directory serializes its own mutations.
type AuthService interface {
	CheckSession(ctx context.Context) Session
	SignUp(ctx context.Context, data models.SignupData) (*models.UserRecord, error)
	SignIn(ctx context.Context, email, password string) (*models.UserRecord, error)
	Logout(ctx context.Context)
}

// userDirectory is the subset of the directory the orchestrator needs.
type userDirectory interface {
	Add(ctx context.Context, data models.SignupData) (*models.UserRecord, error)
	Find(ctx context.Context, email, password string) (*models.UserRecord, error)
}

// sessionStore is the subset of the session manager the orchestrator needs.
type sessionStore interface {
	SetCurrent(ctx context.Context, user *models.UserRecord) error
	GetCurrent(ctx context.Context) (*models.UserRecord, error)
	IsSignedIn(ctx context.Context) bool
	ClearAll(ctx context.Context) error
}

type authService struct {
	directory userDirectory
	session   sessionStore
	log       logging.Logger
}

// NewAuthService constructs an AuthService over the given directory and
// session store.
func NewAuthService(directory userDirectory, session sessionStore, log logging.Logger) AuthService {
	return &authService{directory: directory, session: session, log: log.With("component", "auth")}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// The normalized form is the directory's uniqueness key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckSession reports whether a user is signed in. The persisted flag and
// the user snapshot can diverge if storage was tampered with externally;
// a set flag without a retrievable user is reconciled to signed-out.
func (a *authService) CheckSession(ctx context.Context) Session {
	if !a.session.IsSignedIn(ctx) {
		return Session{}
	}
	user, err := a.session.GetCurrent(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to restore session, treating as signed out", "error", err)
		return Session{}
	}
	if user == nil {
		a.log.Warn(ctx, "signed-in flag set but no current user stored, treating as signed out")
		return Session{}
	}
	return Session{SignedIn: true, User: user}
}

// SignUp registers a new account and signs it in. Missing email or password
// fails with common.ErrValidation; a registered email fails with
// common.ErrDuplicateUser.
func (a *authService) SignUp(ctx context.Context, data models.SignupData) (*models.UserRecord, error) {
	data.Email = NormalizeEmail(data.Email)
	if data.Email == "" || data.Password == "" {
		return nil, common.ErrValidation
	}

	user, err := a.directory.Add(ctx, data)
	if err != nil {
		return nil, err
	}
	if err := a.session.SetCurrent(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return user, nil
}

// SignIn verifies the credentials against the directory and signs the
// matching user in. A miss fails with common.ErrInvalidCredentials.
func (a *authService) SignIn(ctx context.Context, email, password string) (*models.UserRecord, error) {
	user, err := a.directory.Find(ctx, NormalizeEmail(email), password)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, common.ErrInvalidCredentials
	}
	if err := a.session.SetCurrent(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return user, nil
}

// Logout clears the session and wipes every locally registered account
// (the product's chosen logout semantic, see DESIGN.md). It always
// succeeds from the caller's point of view; failures are only logged.
func (a *authService) Logout(ctx context.Context) {
	if err := a.session.ClearAll(ctx); err != nil {
		a.log.Error(ctx, "failed to clear session", "error", err)
	}
}
