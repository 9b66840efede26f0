package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/login"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Menu and action labels.
const (
	labelSelectPhoto = "Selecionar Foto"
	labelChangePhoto = "Alterar Foto"
	labelPhotoLater  = "Adicionar foto depois"
	labelNext        = "Próximo"
	labelBack        = "Voltar"
	labelCancel      = "Cancelar"
	labelLogout      = "Sair"
	labelLogoutAsk   = "Deseja realmente sair?"
	labelPhotoPrompt = "Caminho ou URI da foto"
	labelPhotoHelp   = "Deixe em branco para cancelar a seleção"
	labelWelcome     = "Bem-vindo ao Sistema FIAP"
	labelMenu        = "Gestão de Cadastros"
	labelLoginError  = "Erro"
)

type action int

const (
	actionCapture action = iota
	actionToggleSkip
	actionNext
	actionSubmit
	actionBack
	actionCancel
)

// Renderer hosts registration wizards in a terminal. It plays the role of the
// navigation shell: it draws the current step, feeds edits into the wizard,
// and reports notifications. It holds no wizard state of its own.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	out          io.Writer
	theme        Theme
	logger       *slog.Logger
	templates    *templates
}

// New constructs a TUI renderer with defaults (survey driver, JSON output to
// stdout).
func New(options ...Option) (*Renderer, error) {
	tpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		out:          os.Stdout,
		logger:       slog.Default(),
		templates:    tpl,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Notifier returns a wizard.Notifier that prints notifications through the
// prompt driver.
func (r *Renderer) Notifier() wizard.Notifier {
	return wizard.NotifierFunc(func(n wizard.Notification) {
		prefix := r.theme.InfoPrefix
		if n.Kind == wizard.NotificationCaptureFailed {
			prefix = r.theme.ErrorPrefix
		}
		_ = r.driver.Info(context.Background(), fmt.Sprintf("%s%s %s", prefix, n.Title, n.Message))
	})
}

// PromptCapturer returns a photo capturer that asks for a file path or URI.
// Existing local paths become file:// references; anything with a scheme is
// passed through as-is; a blank answer means no selection.
func (r *Renderer) PromptCapturer() wizard.PhotoCapturer {
	return wizard.CaptureFunc(func(ctx context.Context) (string, error) {
		raw, err := r.driver.Input(ctx, InputConfig{Message: labelPhotoPrompt, Help: labelPhotoHelp})
		if err != nil {
			return "", err
		}
		return resolvePhotoReference(raw)
	})
}

// Run drives w until a record is submitted or the user cancels. On cancel the
// wizard is reset and ErrCancelled is returned.
func (r *Renderer) Run(ctx context.Context, w *wizard.Wizard) (wizard.Submission, error) {
	if ctx == nil {
		return wizard.Submission{}, errors.New("tui: context is required")
	}
	if w == nil {
		return wizard.Submission{}, errors.New("tui: wizard is nil")
	}

	for {
		if err := ctx.Err(); err != nil {
			return wizard.Submission{}, err
		}

		view := w.View()
		if err := r.showStep(ctx, view); err != nil {
			return wizard.Submission{}, err
		}
		if err := r.collectFields(ctx, w, view); err != nil {
			return wizard.Submission{}, err
		}

		act, err := r.chooseAction(ctx, w.View())
		if err != nil {
			return wizard.Submission{}, err
		}

		switch act {
		case actionCapture:
			if err := w.CapturePhoto(ctx); err != nil {
				return wizard.Submission{}, fmt.Errorf("tui: capture photo: %w", err)
			}
		case actionToggleSkip:
			if err := w.ToggleSkipPhoto(); err != nil {
				return wizard.Submission{}, err
			}
		case actionNext:
			w.Next()
		case actionBack:
			if err := w.Back(); err != nil {
				return wizard.Submission{}, err
			}
		case actionSubmit:
			sub, ok, err := w.Submit()
			if err != nil {
				return wizard.Submission{}, err
			}
			if !ok {
				continue
			}
			if err := r.writeRecord(w.Schema(), sub.Record); err != nil {
				return sub, err
			}
			return sub, nil
		case actionCancel:
			w.Cancel()
			return wizard.Submission{}, ErrCancelled
		}
	}
}

// Login prompts for credentials until the gate accepts them.
func (r *Renderer) Login(ctx context.Context, gate *login.Gate) error {
	if gate == nil {
		return errors.New("tui: login gate is nil")
	}

	var email string
	for {
		var err error
		email, err = r.driver.Input(ctx, InputConfig{Message: "Email", Default: email})
		if err != nil {
			return err
		}
		password, err := r.driver.Password(ctx, InputConfig{Message: "Senha"})
		if err != nil {
			return err
		}

		err = gate.Attempt(ctx, email, password)
		var verr *login.ValidationError
		switch {
		case err == nil:
			return r.info(ctx, labelWelcome)
		case errors.As(err, &verr):
			for _, key := range verr.Fields.Keys() {
				if err := r.fail(ctx, verr.Fields[key]); err != nil {
					return err
				}
			}
		case errors.Is(err, login.ErrInvalidCredentials):
			if err := r.fail(ctx, labelLoginError+": "+login.MessageInvalidCredentials); err != nil {
				return err
			}
		default:
			return err
		}
	}
}

// Session logs in, then offers one menu entry per wizard until the user
// confirms logout. Each entry runs an independent wizard instance.
func (r *Renderer) Session(ctx context.Context, gate *login.Gate, wizards ...*wizard.Wizard) error {
	if err := r.Login(ctx, gate); err != nil {
		return err
	}

	options := make([]string, 0, len(wizards)+1)
	for _, w := range wizards {
		options = append(options, w.Schema().SubmitLabel)
	}
	options = append(options, labelLogout)

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{Message: labelMenu, Options: options})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			continue
		}

		if idx == len(wizards) {
			leave, err := r.driver.Confirm(ctx, ConfirmConfig{Message: labelLogoutAsk})
			if err != nil {
				return err
			}
			if leave {
				r.logger.Info("session closed")
				return nil
			}
			continue
		}

		w := wizards[idx]
		if _, err := r.Run(ctx, w); err != nil && !errors.Is(err, ErrCancelled) {
			return err
		}
	}
}

func (r *Renderer) showStep(ctx context.Context, view wizard.StepView) error {
	header, err := r.templates.stepHeader(view)
	if err != nil {
		return err
	}
	if err := r.info(ctx, header); err != nil {
		return err
	}
	if view.Photo {
		status := "Nenhuma foto selecionada"
		switch view.PhotoState.State() {
		case model.PhotoCaptured:
			status = "Foto: " + view.PhotoState.Reference()
		case model.PhotoSkipped:
			status = "[x] " + labelPhotoLater
		}
		if err := r.info(ctx, status); err != nil {
			return err
		}
		if view.PhotoError != "" {
			return r.fail(ctx, view.PhotoError)
		}
	}
	return nil
}

// collectFields prompts every field of the step, prefilled with its current
// value, and shows the field's pending error as help text.
func (r *Renderer) collectFields(ctx context.Context, w *wizard.Wizard, view wizard.StepView) error {
	for _, fv := range view.Fields {
		if fv.Error != "" {
			if err := r.fail(ctx, fv.Error); err != nil {
				return err
			}
		}
		raw, err := r.driver.Input(ctx, InputConfig{
			Message: fv.Field.Prompt(),
			Default: fv.Value,
			Help:    fv.Error,
		})
		if err != nil {
			return err
		}
		value := sanitizeInput(raw)
		if value == fv.Value {
			continue
		}
		if err := w.UpdateField(fv.Field.Key, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) chooseAction(ctx context.Context, view wizard.StepView) (action, error) {
	var (
		labels  []string
		actions []action
	)
	add := func(label string, act action) {
		labels = append(labels, label)
		actions = append(actions, act)
	}

	if view.Photo {
		if view.PhotoState.State() == model.PhotoCaptured {
			add(labelChangePhoto, actionCapture)
		} else {
			add(labelSelectPhoto, actionCapture)
		}
		check := "[ ] "
		if view.PhotoState.State() == model.PhotoSkipped {
			check = "[x] "
		}
		add(check+labelPhotoLater, actionToggleSkip)
	}
	if view.CanGoBack {
		add(labelBack, actionBack)
	}
	if view.IsLast {
		add(view.SubmitLabel, actionSubmit)
	} else {
		add(labelNext, actionNext)
	}
	add(labelCancel, actionCancel)

	idx, err := r.driver.Select(ctx, SelectConfig{Message: view.Label, Options: labels})
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(actions) {
		return 0, fmt.Errorf("tui: invalid menu choice %d", idx)
	}
	return actions[idx], nil
}

func (r *Renderer) writeRecord(schema model.Schema, record model.Record) error {
	payload, err := r.serialize(schema, record)
	if err != nil {
		return err
	}
	if _, err := r.out.Write(payload); err != nil {
		return fmt.Errorf("tui: write record: %w", err)
	}
	return nil
}

func (r *Renderer) serialize(schema model.Schema, record model.Record) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for k, v := range record.Fields() {
			form.Set(k, v)
		}
		return []byte(form.Encode() + "\n"), nil
	case OutputFormatPrettyText:
		out, err := r.templates.recordSummary(schema, record)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	default:
		out, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode record: %w", err)
		}
		return append(out, '\n'), nil
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) fail(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func resolvePhotoReference(raw string) (string, error) {
	ref := strings.TrimSpace(raw)
	if ref == "" {
		return "", nil
	}
	// Single-letter schemes are Windows drive letters, not URIs.
	if u, err := url.Parse(ref); err == nil && len(u.Scheme) > 1 {
		return ref, nil
	}

	abs, err := filepath.Abs(ref)
	if err != nil {
		return "", fmt.Errorf("tui: photo path %q: %w", ref, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("tui: photo path %q: %w", ref, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("tui: photo path %q is a directory", ref)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
