package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/pysync/internal/app"
	"go.trai.ch/pysync/internal/ui/output"
	"go.trai.ch/pysync/internal/ui/style"
)

// RenderReport writes the change summary for r to w, colored for the terminal w is attached to.
func RenderReport(w io.Writer, r *app.Report) error {
	return RenderReportWithProfile(w, r, output.ForWriter(w).Profile)
}

// RenderReportWithProfile writes the change summary for r using an explicit color profile.
func RenderReportWithProfile(w io.Writer, r *app.Report, profile termenv.Profile) error {
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	s := style.New(renderer)

	var b strings.Builder
	elapsed := app.FormatElapsed(r.Elapsed)

	if r.NothingToDo() {
		b.WriteString(s.Muted.Render(fmt.Sprintf("%s Up to date: audited %d distribution(s) in %s",
			style.Check, r.Audited, elapsed)))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	if r.DryRun {
		b.WriteString(s.Headline.Render("Would apply:"))
	} else {
		b.WriteString(s.Headline.Render(fmt.Sprintf("Synced %d distribution(s) in %s:", r.Audited, elapsed)))
	}
	b.WriteString("\n")

	for _, name := range r.Fetched {
		writeLine(&b, s.Added, style.Plus, name)
	}
	for _, name := range r.Linked {
		writeLine(&b, s.Added, style.Plus, name+" "+s.Muted.Render("(cached)"))
	}
	for _, name := range r.Reinstalled {
		writeLine(&b, s.Changed, style.Tilde, name)
	}
	for _, name := range r.Removed {
		writeLine(&b, s.Removed, style.Minus, name)
	}

	if len(r.OwnershipMismatch) > 0 {
		verb := "now managed by pysync"
		if r.DryRun {
			verb = "will be managed by pysync"
		}
		b.WriteString(s.Warning.Render(fmt.Sprintf("%s Installed by another tool, %s: %s",
			style.Warning, verb, strings.Join(r.OwnershipMismatch, ", "))))
		b.WriteString("\n")
	}
	if len(r.Clobbered) > 0 {
		b.WriteString(s.Warning.Render(fmt.Sprintf("%s Overwrote conda files: %s",
			style.Warning, strings.Join(r.Clobbered, ", "))))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeLine(b *strings.Builder, st lipgloss.Style, icon, text string) {
	b.WriteString("  ")
	b.WriteString(st.Render(icon))
	b.WriteString(" ")
	b.WriteString(text)
	b.WriteString("\n")
}
