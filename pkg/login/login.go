// Package login implements the mock gate in front of the registration
// wizards: client-side pre-validation of the email/password pair followed by
// a comparison against a single configured credential, after an artificial
// delay that stands in for a network round trip.
package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// Field keys used in validation errors.
const (
	FieldEmail    = "email"
	FieldPassword = "senha"
)

// Messages shown to users.
const (
	MessageEmailRequired      = "Email é obrigatório"
	MessageEmailInvalid       = "Email inválido"
	MessagePasswordRequired   = "Senha é obrigatória"
	MessagePasswordTooShort   = "Senha deve ter pelo menos 6 caracteres"
	MessageInvalidCredentials = "Email ou senha incorretos"
)

// Defaults for the demo credential pair and simulated latency.
const (
	DefaultEmail    = "admin@fiap.com"
	DefaultPassword = "123456"
	DefaultDelay    = 1500 * time.Millisecond

	minPasswordLength = 6
	coarseEmailTag    = "coarse_email"
)

// ErrInvalidCredentials is returned when the pair does not match.
var ErrInvalidCredentials = errors.New("login: " + MessageInvalidCredentials)

// ValidationError carries the per-field messages that blocked an attempt.
type ValidationError struct {
	Fields model.Errors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, key := range e.Fields.Keys() {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.Fields[key]))
	}
	return "login: invalid input (" + strings.Join(parts, "; ") + ")"
}

// Credentials is the single accepted pair.
type Credentials struct {
	Email    string
	Password string
}

// Gate checks login attempts.
type Gate struct {
	creds    Credentials
	delay    time.Duration
	logger   *slog.Logger
	validate *validator.Validate
}

// Option configures a Gate.
type Option func(*Gate)

// WithCredentials replaces the accepted pair.
func WithCredentials(c Credentials) Option {
	return func(g *Gate) {
		g.creds = c
	}
}

// WithDelay overrides the simulated latency. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(g *Gate) {
		if d >= 0 {
			g.delay = d
		}
	}
}

// WithLogger overrides the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New builds a gate with the demo defaults.
func New(options ...Option) *Gate {
	g := &Gate{
		creds:    Credentials{Email: DefaultEmail, Password: DefaultPassword},
		delay:    DefaultDelay,
		logger:   slog.Default(),
		validate: newValidator(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// Validate runs the client-side checks and returns a fresh error map.
func (g *Gate) Validate(email, password string) model.Errors {
	errs := make(model.Errors)

	switch {
	case g.validate.Var(strings.TrimSpace(email), "required") != nil:
		errs[FieldEmail] = MessageEmailRequired
	case g.validate.Var(email, coarseEmailTag) != nil:
		errs[FieldEmail] = MessageEmailInvalid
	}

	switch {
	case g.validate.Var(strings.TrimSpace(password), "required") != nil:
		errs[FieldPassword] = MessagePasswordRequired
	case g.validate.Var(password, fmt.Sprintf("min=%d", minPasswordLength)) != nil:
		errs[FieldPassword] = MessagePasswordTooShort
	}

	return errs
}

// Attempt validates the input, waits for the simulated latency, and compares
// the pair. It returns nil on success, a *ValidationError when pre-validation
// fails (no delay is spent), ErrInvalidCredentials on mismatch, or the
// context error when ctx ends during the wait.
func (g *Gate) Attempt(ctx context.Context, email, password string) error {
	if errs := g.Validate(email, password); !errs.Empty() {
		return &ValidationError{Fields: errs}
	}

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if email != g.creds.Email || password != g.creds.Password {
		g.logger.Info("login rejected", "email", email)
		return ErrInvalidCredentials
	}
	g.logger.Info("login accepted", "email", email)
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation(coarseEmailTag, func(fl validator.FieldLevel) bool {
		return validation.IsEmail(fl.Field().String())
	})
	return v
}
