package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/vk/rtdeps/internal/resolver"
)

// Report is the document written for a successful resolution.
type Report struct {
	RuntimeIdentifier string                       `json:"runtimeIdentifier" yaml:"runtimeIdentifier"`
	TargetFramework   string                       `json:"targetFramework,omitempty" yaml:"targetFramework,omitempty"`
	Dependencies      []resolver.RuntimeDependency `json:"dependencies" yaml:"dependencies"`
}

func (a *App) render(deps []resolver.RuntimeDependency) error {
	if deps == nil {
		deps = []resolver.RuntimeDependency{}
	}
	report := Report{
		RuntimeIdentifier: a.env.RuntimeIdentifier,
		TargetFramework:   a.env.TargetFramework,
		Dependencies:      deps,
	}

	switch a.config.OutputFormat {
	case OutputJSON:
		return writeJSON(a.outW, report)
	case OutputText:
		return writeText(a.outW, report)
	default:
		return writeYAML(a.outW, report)
	}
}

func writeYAML(w io.Writer, report Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

func writeJSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// writeText renders a human readable listing. Styling is dropped
// automatically when w is not a terminal.
func writeText(w io.Writer, report Report) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)
	label := r.NewStyle().Faint(true).Width(10)
	muted := r.NewStyle().Faint(true)

	heading := "Runtime dependencies for " + report.RuntimeIdentifier
	if report.TargetFramework != "" {
		heading += " (" + report.TargetFramework + ")"
	}
	if _, err := fmt.Fprintln(w, title.Render(heading)); err != nil {
		return err
	}
	if len(report.Dependencies) == 0 {
		_, err := fmt.Fprintln(w, muted.Render("  no dependencies"))
		return err
	}

	for _, dep := range report.Dependencies {
		lines := []string{title.Render(dep.Name + " " + dep.Version)}
		for _, asm := range dep.Assemblies {
			lines = append(lines, "  "+label.Render("assembly")+asm.Path+muted.Render("  ["+asm.Identity.String()+"]"))
		}
		for _, p := range dep.NativeAssets {
			lines = append(lines, "  "+label.Render("native")+p)
		}
		for _, p := range dep.Scripts {
			lines = append(lines, "  "+label.Render("script")+p)
		}
		if len(lines) == 1 {
			lines = append(lines, muted.Render("  no runtime assets"))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
