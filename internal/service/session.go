package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moodlog/backend/internal/metrics"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// RevocationStore is the denylist of logged-out tokens.
type RevocationStore interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
	EvictOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Reason says why the gate rejected a request. It is never sent to clients.
type Reason string

const (
	ReasonMissingHeader  Reason = "missing_header"
	ReasonBadScheme      Reason = "bad_scheme"
	ReasonMalformedToken Reason = "malformed_token"
	ReasonBadSignature   Reason = "bad_signature"
	ReasonExpired        Reason = "expired"
	ReasonRevoked        Reason = "revoked"
	ReasonStoreError     Reason = "store_error"
)

// GateError carries the rejection reason and, for store failures, the cause.
type GateError struct {
	Reason Reason
	Err    error
}

func (e *GateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("session rejected (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("session rejected (%s)", e.Reason)
}

// Redact maps the reason to what a client may learn: ErrInternal for a store
// failure and ErrUnauthorized for everything else.
func (e *GateError) Redact() error {
	if e.Reason == ReasonStoreError {
		return ErrInternal
	}
	return ErrUnauthorized
}

// Unwrap lets callers test the redacted class with errors.Is.
func (e *GateError) Unwrap() error {
	return e.Redact()
}

// Principal is the authenticated caller for one request.
type Principal struct {
	Subject string
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// SessionGate turns an Authorization header into a Principal. A request is
// accepted only when the token verifies, has not expired and is not revoked.
// If the revocation check cannot be answered the request is rejected.
type SessionGate struct {
	codec   *TokenCodec
	store   RevocationStore
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewSessionGate(codec *TokenCodec, store RevocationStore, log *zap.Logger, m *metrics.Metrics) *SessionGate {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionGate{codec: codec, store: store, log: log, metrics: m}
}

func (g *SessionGate) Authenticate(ctx context.Context, header string) (Principal, error) {
	p, _, err := g.authenticate(ctx, header)
	if err != nil {
		return Principal{}, err
	}
	if g.metrics != nil {
		g.metrics.GateAccepted.Inc()
	}
	return p, nil
}

// Logout revokes the presented token. A token that is already revoked is
// rejected like any other invalid credential.
func (g *SessionGate) Logout(ctx context.Context, header string) error {
	p, token, err := g.authenticate(ctx, header)
	if err != nil {
		return err
	}

	if err := g.store.Revoke(ctx, token); err != nil {
		return g.reject(&GateError{Reason: ReasonStoreError, Err: err})
	}
	if g.metrics != nil {
		g.metrics.Revocations.Inc()
	}
	g.log.Info("session revoked", zap.String("subject", p.Subject))
	return nil
}

func (g *SessionGate) authenticate(ctx context.Context, header string) (Principal, string, error) {
	if header == "" {
		return Principal{}, "", g.reject(&GateError{Reason: ReasonMissingHeader})
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return Principal{}, "", g.reject(&GateError{Reason: ReasonBadScheme})
	}

	token := strings.TrimPrefix(header, bearerPrefix)
	if strings.TrimSpace(token) == "" {
		return Principal{}, "", g.reject(&GateError{Reason: ReasonMalformedToken})
	}

	id, reason, err := g.codec.parse(token)
	if err != nil {
		return Principal{}, "", g.reject(&GateError{Reason: reason})
	}

	revoked, err := g.store.IsRevoked(ctx, token)
	if err != nil {
		return Principal{}, "", g.reject(&GateError{Reason: ReasonStoreError, Err: err})
	}
	if revoked {
		return Principal{}, "", g.reject(&GateError{Reason: ReasonRevoked})
	}

	return Principal{Subject: id.Subject}, token, nil
}

func (g *SessionGate) reject(e *GateError) error {
	if g.metrics != nil {
		g.metrics.GateRejections.WithLabelValues(string(e.Reason)).Inc()
	}
	if e.Reason == ReasonStoreError {
		g.log.Error("revocation store unavailable, rejecting request", zap.Error(e.Err))
	} else {
		g.log.Debug("session rejected", zap.String("reason", string(e.Reason)))
	}
	return e
}
