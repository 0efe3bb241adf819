package storefront

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
)

// SessionObject is a point-in-time projection of the stored token. Role is
// always recomputed from the token, never cached independently of it.
type SessionObject struct {
	UserID        string     `json:"user_id,omitempty"`
	Role          Role       `json:"role,omitempty"`
	Authenticated bool       `json:"authenticated,omitempty"`
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

func (s SessionObject) String() string {
	return fmt.Sprintf(
		"user=%s role=%s authenticated=%t",
		s.UserID,
		s.Role,
		s.Authenticated,
	)
}

// Credentials is the default LoginPayload implementation.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) GetIdentifier() string { return c.Email }
func (c Credentials) GetPassword() string   { return c.Password }

// Validate checks the credentials before they are ever sent to the backend.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required),
	)
}

// ValidateRegisterInput checks account creation input locally.
func ValidateRegisterInput(input RegisterInput) error {
	return validation.ValidateStruct(&input,
		validation.Field(&input.FirstName, validation.Required),
		validation.Field(&input.LastName, validation.Required),
		validation.Field(&input.Email, validation.Required, is.Email),
		validation.Field(&input.Password, validation.Required, validation.Length(8, 0)),
	)
}

// SessionService owns the bearer token lifecycle: it establishes a session
// on login, interprets the token for UI purposes, and tears the session down
// on logout with guaranteed local cleanup.
type SessionService struct {
	tokens       TokenStore
	gateway      AuthGateway
	logger       Logger
	activitySink ActivitySink
}

// NewSessionService returns a session service over the given gateway and
// token store.
func NewSessionService(gateway AuthGateway, tokens TokenStore) *SessionService {
	return &SessionService{
		tokens:       tokens,
		gateway:      gateway,
		logger:       defLogger{},
		activitySink: noopActivitySink{},
	}
}

func (s *SessionService) WithLogger(logger Logger) *SessionService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithActivitySink configures an ActivitySink for emitting session events.
func (s *SessionService) WithActivitySink(sink ActivitySink) *SessionService {
	s.activitySink = normalizeActivitySink(sink)
	return s
}

// Login validates the payload, exchanges credentials for a bearer token, and
// stores the token. Backend rejections propagate to the caller.
func (s *SessionService) Login(ctx context.Context, payload LoginPayload) (*SessionObject, error) {
	creds := Credentials{
		Email:    payload.GetIdentifier(),
		Password: payload.GetPassword(),
	}

	if err := creds.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid login payload").
			WithCode(errors.CodeBadRequest)
	}

	token, err := s.gateway.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		s.logger.Error("Login gateway error", "error", err)
		s.emitEvent(ctx, ActivityEventLoginFailure, "", map[string]any{
			"identifier": creds.Email,
			"error":      err.Error(),
		})
		return nil, err
	}

	if err := s.tokens.Put(ctx, token); err != nil {
		s.logger.Error("Login token store error", "error", err)
		return nil, err
	}

	session := s.sessionFromToken(token)
	s.emitEvent(ctx, ActivityEventLoginSuccess, session.UserID, map[string]any{
		"identifier": creds.Email,
	})

	return session, nil
}

// Register creates an account, stores the issued token, and returns the
// resulting session.
func (s *SessionService) Register(ctx context.Context, input RegisterInput) (*SessionObject, error) {
	if err := ValidateRegisterInput(input); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid registration payload").
			WithCode(errors.CodeBadRequest)
	}

	token, err := s.gateway.Register(ctx, input)
	if err != nil {
		s.logger.Error("Register gateway error", "error", err)
		s.emitEvent(ctx, ActivityEventRegisterFailure, "", map[string]any{
			"identifier": input.Email,
			"error":      err.Error(),
		})
		return nil, err
	}

	if err := s.tokens.Put(ctx, token); err != nil {
		s.logger.Error("Register token store error", "error", err)
		return nil, err
	}

	session := s.sessionFromToken(token)
	s.emitEvent(ctx, ActivityEventRegisterSuccess, session.UserID, map[string]any{
		"identifier": input.Email,
	})

	return session, nil
}

// Logout notifies the backend best-effort and always removes the local
// token. A dead backend or an expired token must never leave the client
// authenticated, so the local clear runs in a deferred path covering both
// the success and failure branches.
func (s *SessionService) Logout(ctx context.Context) (err error) {
	token, getErr := s.tokens.Get(ctx)
	if getErr != nil {
		s.logger.Warn("Logout could not read token, clearing anyway", "error", getErr)
	}

	userID := ""
	if claims, decodeErr := DecodeTokenClaims(token); decodeErr == nil {
		userID = claims.UserID()
	}

	defer func() {
		if clearErr := s.tokens.Clear(ctx); clearErr != nil {
			s.logger.Error("Logout failed to clear local token", "error", clearErr)
			err = clearErr
			return
		}
		s.emitEvent(ctx, ActivityEventLogout, userID, nil)
	}()

	if token == "" {
		return nil
	}

	if notifyErr := s.gateway.Logout(ctx, token); notifyErr != nil {
		// Server-side invalidation is best effort; the token may already be
		// expired or the backend unreachable.
		s.logger.Warn("Logout backend notification failed", "error", notifyErr)
	}

	return nil
}

// Invalidate removes the local token without contacting the backend. Used
// when the account was deleted or the backend already rejected the token.
func (s *SessionService) Invalidate(ctx context.Context) error {
	if err := s.tokens.Clear(ctx); err != nil {
		return err
	}
	s.emitEvent(ctx, ActivityEventLogout, "", map[string]any{"reason": "invalidated"})
	return nil
}

// IsAuthenticated is true iff a token is present. No client-side expiry
// check is performed; the backend is the authority.
func (s *SessionService) IsAuthenticated(ctx context.Context) bool {
	token, err := s.tokens.Get(ctx)
	if err != nil {
		s.logger.Warn("IsAuthenticated token read failed", "error", err)
		return false
	}
	return token != ""
}

// Role decodes the stored token's claims and returns the advisory role.
// Malformed tokens and missing claims degrade to RoleAnonymous; this drives
// UI affordances only, never actual authorization.
func (s *SessionService) Role(ctx context.Context) Role {
	return s.Session(ctx).Role
}

// Session returns a snapshot derived entirely from the current token.
func (s *SessionService) Session(ctx context.Context) *SessionObject {
	token, err := s.tokens.Get(ctx)
	if err != nil {
		s.logger.Warn("Session token read failed", "error", err)
		return &SessionObject{Role: RoleAnonymous}
	}

	if token == "" {
		return &SessionObject{Role: RoleAnonymous}
	}

	return s.sessionFromToken(token)
}

func (s *SessionService) sessionFromToken(token string) *SessionObject {
	session := &SessionObject{
		Authenticated: true,
		Role:          RoleAnonymous,
	}

	claims, err := DecodeTokenClaims(token)
	if err != nil {
		s.logger.Debug("session claims decode failed, role degraded", "error", err)
		return session
	}

	session.UserID = claims.UserID()
	session.Role = claims.Role()

	if issued := claims.IssuedAt(); !issued.IsZero() {
		session.IssuedAt = &issued
	}
	if expires := claims.Expires(); !expires.IsZero() {
		session.ExpiresAt = &expires
	}

	return session
}

func (s *SessionService) emitEvent(ctx context.Context, eventType ActivityEventType, userID string, metadata map[string]any) {
	sink := normalizeActivitySink(s.activitySink)
	event := ActivityEvent{
		EventType: eventType,
		UserID:    userID,
		Metadata:  metadata,
	}

	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	if err := sink.Record(ctx, event); err != nil {
		s.logger.Warn("activity sink record error: %v", err)
	}
}
