package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/pkg/entity"
	"github.com/goliatone/go-formwizard/pkg/login"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func main() {
	configFile := flag.String("config", "", "config file (yaml, json or toml)")
	dotEnv := flag.String("env-file", ".env", "dotenv file loaded when present")
	output := flag.String("output", "", "record format: json, form or pretty (overrides config)")
	schemaDir := flag.String("schema-dir", "", "directory of entity definitions (overrides config)")
	exportSchema := flag.Bool("export-schema", false, "print the OpenAPI document for the record schemas and exit")
	flag.Parse()

	cfg, err := config.Load(config.Sources{File: *configFile, DotEnv: *dotEnv})
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *output != "" {
		cfg.OutputFormat = *output
	}
	if *schemaDir != "" {
		cfg.SchemaDir = *schemaDir
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	schemas, err := loadSchemas(cfg.SchemaDir)
	if err != nil {
		log.Fatalf("Failed to load entity definitions: %v", err)
	}

	if *exportSchema {
		doc := entity.OpenAPIDocument("formwizard records", "1.0.0", schemas...)
		raw, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode schema: %v", err)
		}
		fmt.Println(string(raw))
		return
	}

	format, ok := tui.ParseOutputFormat(cfg.OutputFormat)
	if !ok {
		log.Fatalf("Unsupported output format %q", cfg.OutputFormat)
	}
	renderer, err := tui.New(tui.WithOutputFormat(format), tui.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to build renderer: %v", err)
	}

	gate := login.New(
		login.WithCredentials(login.Credentials{Email: cfg.LoginEmail, Password: cfg.LoginPassword}),
		login.WithDelay(cfg.LoginDelay),
		login.WithLogger(logger),
	)

	wizards := make([]*wizard.Wizard, 0, len(schemas))
	for _, sc := range schemas {
		wizards = append(wizards, wizard.New(sc,
			wizard.WithNotifier(renderer.Notifier()),
			wizard.WithCapturer(renderer.PromptCapturer()),
			wizard.WithLogger(logger.With("entity", sc.Entity)),
		))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := renderer.Session(ctx, gate, wizards...); err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
			return
		}
		log.Fatalf("Session failed: %v", err)
	}
}

func loadSchemas(dir string) ([]model.Schema, error) {
	store := entity.Builtin()
	if dir != "" {
		var err error
		store, err = entity.LoadDir(dir)
		if err != nil {
			return nil, err
		}
	}
	if store.Empty() {
		return nil, errors.New("no entity definitions found")
	}

	schemas := make([]model.Schema, 0, len(store.Names()))
	for _, name := range store.Names() {
		sc, _ := store.Lookup(name)
		schemas = append(schemas, sc)
	}
	return schemas, nil
}
