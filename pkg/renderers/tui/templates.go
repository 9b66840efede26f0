package tui

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

type templates struct {
	step    *pongo2.Template
	summary *pongo2.Template
}

type summaryRow struct {
	Label string
	Value string
}

func loadTemplates() (*templates, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("tui: templates: %w", err)
	}
	set := pongo2.NewSet("formwizard-tui", pongo2.NewFSLoader(sub))

	step, err := set.FromFile("step.tpl")
	if err != nil {
		return nil, fmt.Errorf("tui: parse step template: %w", err)
	}
	summary, err := set.FromFile("summary.tpl")
	if err != nil {
		return nil, fmt.Errorf("tui: parse summary template: %w", err)
	}
	return &templates{step: step, summary: summary}, nil
}

func (t *templates) stepHeader(view wizard.StepView) (string, error) {
	out, err := t.step.Execute(pongo2.Context{
		"title": view.Title,
		"step":  view.Step,
		"total": view.StepCount,
		"label": view.Label,
	})
	if err != nil {
		return "", fmt.Errorf("tui: render step header: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}

// recordSummary lists the record in schema order with human labels.
func (t *templates) recordSummary(schema model.Schema, record model.Record) (string, error) {
	rows := []summaryRow{{Label: "Foto", Value: record.Photo}}
	for _, st := range schema.Steps {
		for _, f := range st.Fields {
			rows = append(rows, summaryRow{Label: f.Label, Value: record.Values[f.Key]})
		}
	}
	out, err := t.summary.Execute(pongo2.Context{
		"heading": schema.Title,
		"rows":    rows,
	})
	if err != nil {
		return "", fmt.Errorf("tui: render summary: %w", err)
	}
	return out, nil
}
