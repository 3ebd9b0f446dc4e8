// Package renderer turns analytics results into markdown reports and PNG charts.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// funcs are available to every template.
var funcs = template.FuncMap{
	"pct":   Percent,
	"ratio": Ratio,
	"money": Money,
	"shock": Shock,
}

// RenderComparison renders the performance comparison table.
func RenderComparison(c *Comparison) string {
	partials := map[string]string{
		"title":   "title.md",
		"metrics": "comparison_metrics.md",
	}
	return renderTemplate("comparison", "comparison.md", partials, c)
}

// RenderWeights renders the allocation of every strategy.
func RenderWeights(w *WeightsReport) string {
	partials := map[string]string{
		"title": "title.md",
	}
	return renderTemplate("weights", "weights.md", partials, w)
}

// RenderStress renders a stress test, its shocks and the stressed portfolio values.
func RenderStress(s *StressReport) string {
	partials := map[string]string{
		"title":  "title.md",
		"shocks": "stress_shocks.md",
	}
	return renderTemplate("stress", "stress.md", partials, s)
}

// RenderRolling renders the rolling statistics of a portfolio.
func RenderRolling(r *RollingReport) string {
	partials := map[string]string{
		"title": "title.md",
	}
	return renderTemplate("rolling", "rolling.md", partials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
