package login_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/login"
	"github.com/goliatone/go-formwizard/pkg/model"
)

func quietGate(opts ...login.Option) *login.Gate {
	base := []login.Option{
		login.WithDelay(0),
		login.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return login.New(append(base, opts...)...)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
		want     model.Errors
	}{
		{name: "valid", email: "admin@fiap.com", password: "123456", want: model.Errors{}},
		{name: "empty", email: "  ", password: "", want: model.Errors{
			"email": login.MessageEmailRequired,
			"senha": login.MessagePasswordRequired,
		}},
		{name: "bad email", email: "admin", password: "123456", want: model.Errors{
			"email": login.MessageEmailInvalid,
		}},
		{name: "short password", email: "a@b.c", password: "12345", want: model.Errors{
			"senha": login.MessagePasswordTooShort,
		}},
		{name: "blank password", email: "a@b.c", password: "      ", want: model.Errors{
			"senha": login.MessagePasswordRequired,
		}},
		{name: "padded short password counts raw length", email: "a@b.c", password: " 1234 ", want: model.Errors{}},
	}

	g := quietGate()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, g.Validate(tc.email, tc.password)); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAttempt(t *testing.T) {
	g := quietGate()

	if err := g.Attempt(context.Background(), login.DefaultEmail, login.DefaultPassword); err != nil {
		t.Fatalf("default credentials rejected: %v", err)
	}
	if err := g.Attempt(context.Background(), "admin@fiap.com", "654321"); !errors.Is(err, login.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	err := g.Attempt(context.Background(), "", "")
	var verr *login.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("fields: %v", verr.Fields)
	}
}

func TestAttempt_CustomCredentials(t *testing.T) {
	g := quietGate(login.WithCredentials(login.Credentials{Email: "prof@escola.br", Password: "segredo"}))
	if err := g.Attempt(context.Background(), "prof@escola.br", "segredo"); err != nil {
		t.Fatalf("custom credentials rejected: %v", err)
	}
	if err := g.Attempt(context.Background(), login.DefaultEmail, login.DefaultPassword); !errors.Is(err, login.ErrInvalidCredentials) {
		t.Fatalf("defaults should no longer work, got %v", err)
	}
}

func TestAttempt_DelayHonoursContext(t *testing.T) {
	g := quietGate(login.WithDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := g.Attempt(ctx, login.DefaultEmail, login.DefaultPassword); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAttempt_ValidationSkipsDelay(t *testing.T) {
	g := quietGate(login.WithDelay(time.Hour))
	done := make(chan error, 1)
	go func() { done <- g.Attempt(context.Background(), "", "") }()

	select {
	case err := <-done:
		var verr *login.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("validation failure should not wait for the delay")
	}
}
