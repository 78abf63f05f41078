package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sitecheck/sitecheck/internal/domain"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle           = lipgloss.NewStyle().Foreground(dim)
	faintStyle         = lipgloss.NewStyle().Foreground(faint)
	passStyle          = lipgloss.NewStyle().Foreground(success)
	failStyle          = lipgloss.NewStyle().Foreground(danger)
	warnStyle          = lipgloss.NewStyle().Foreground(warning)
	skipStyle          = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle      = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle       = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle       = lipgloss.NewStyle().Foreground(info)
	fileStyle          = lipgloss.NewStyle().Foreground(dim)
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine      = faintStyle.Render(strings.Repeat("─", 64))
)

// Options controls report rendering.
type Options struct {
	// WarningPreview caps the number of warnings listed in full.
	WarningPreview int
}

// RenderRun formats a validation run for terminal output.
func RenderRun(run *domain.ValidationRun, opts Options) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("sitecheck")
	subtitle := dimStyle.Render("Static site audit")
	target := fileStyle.Render(run.OutputDir)
	if run.Revision != nil {
		target += "  " + faintStyle.Render(run.Revision.Short())
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + target))
	b.WriteString("\n\n")

	// ── Pages ──
	b.WriteString("  " + sectionHeaderStyle.Render("Pages") + " " +
		dimStyle.Render(fmt.Sprintf("(%d)", len(run.Pages))) + "\n")
	for _, p := range run.Pages {
		renderPage(&b, p)
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n")

	// ── Errors ──
	if errs := run.ErrorsByKind(); len(errs) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + errorTagStyle.Render(fmt.Sprintf("Errors (%d)", len(run.Errors()))) + "\n")
		for _, g := range errs {
			b.WriteString("\n")
			fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render(string(g.Kind)), dimStyle.Render(fmt.Sprintf("(%d)", len(g.Findings))))
			for _, f := range g.Findings {
				renderFinding(&b, f, failStyle.Render("✗"))
			}
		}
	}

	// ── Warnings ──
	if warns := run.Warnings(); len(warns) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + warnTagStyle.Render(fmt.Sprintf("Warnings (%d)", len(warns))) + "\n\n")
		shown := warns
		if opts.WarningPreview >= 0 && len(warns) > opts.WarningPreview {
			shown = warns[:opts.WarningPreview]
		}
		for _, f := range shown {
			renderFinding(&b, f, warnStyle.Render("⚠"))
		}
		if rest := len(warns) - len(shown); rest > 0 {
			b.WriteString("    " + dimStyle.Render(fmt.Sprintf("... and %d more warnings", rest)) + "\n")
		}
	}

	// ── Summary ──
	b.WriteString("\n")
	b.WriteString(renderSummary(run))
	return b.String()
}

func renderPage(b *strings.Builder, p domain.PageResult) {
	if !p.HasSchema() {
		line := fmt.Sprintf("    %s %s", pageIcon(p), p.Path)
		if p.Errors == 0 && p.Warnings == 0 {
			line = fmt.Sprintf("    %s %s", skipStyle.Render("○"), skipStyle.Render(p.Path))
		}
		b.WriteString(line + "  " + faintStyle.Render("no schema") + countsSuffix(p.Errors, p.Warnings) + "\n")
		return
	}

	fmt.Fprintf(b, "    %s %s%s\n", pageIcon(p), p.Path, countsSuffix(p.Errors, p.Warnings))
	for _, blk := range p.Blocks {
		fmt.Fprintf(b, "        %s %s  %s\n",
			statusIcon(blk.Errors, blk.Warnings),
			fileStyle.Render(fmt.Sprintf("line %d", blk.Line)),
			blk.Type)
	}
}

func pageIcon(p domain.PageResult) string {
	return statusIcon(p.Errors, p.Warnings)
}

func statusIcon(errors, warnings int) string {
	switch {
	case errors > 0:
		return failStyle.Render("✗")
	case warnings > 0:
		return warnStyle.Render("⚠")
	default:
		return passStyle.Render("✓")
	}
}

func countsSuffix(errors, warnings int) string {
	var parts []string
	if errors > 0 {
		parts = append(parts, failStyle.Render(plural(errors, "error")))
	}
	if warnings > 0 {
		parts = append(parts, warnStyle.Render(plural(warnings, "warning")))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, " ")
}

func renderFinding(b *strings.Builder, f domain.Finding, icon string) {
	loc := f.File
	if f.Line > 0 {
		loc = fmt.Sprintf("%s:%d", f.File, f.Line)
	}
	fmt.Fprintf(b, "    %s %s\n", icon, fileStyle.Render(loc))
	fmt.Fprintf(b, "      %s\n", f.Message)
	if f.Element != "" {
		fmt.Fprintf(b, "      %s\n", faintStyle.Render(oneLine(f.Element)))
	}
	if f.Related != "" {
		fmt.Fprintf(b, "      %s %s\n", infoTagStyle.Render("first:"), faintStyle.Render(oneLine(f.Related)))
	}
}

func renderSummary(run *domain.ValidationRun) string {
	s := run.Summary()
	lines := []string{
		fmt.Sprintf("%s %d", padRight("Files scanned", 18), s.FilesScanned),
		fmt.Sprintf("%s %d", padRight("Files with schema", 18), s.FilesWithSchema),
		fmt.Sprintf("%s %d", padRight("Schema blocks", 18), s.SchemaBlocks),
		fmt.Sprintf("%s %s", padRight("Errors", 18), countStyle(s.Errors, failStyle)),
		fmt.Sprintf("%s %s", padRight("Warnings", 18), countStyle(s.Warnings, warnStyle)),
	}

	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Summary") + "\n")
	for _, l := range lines {
		b.WriteString("    " + l + "\n")
	}
	b.WriteString("\n")
	if run.Passed() {
		b.WriteString("  " + passStyle.Bold(true).Render("✓ PASSED") + "\n")
	} else {
		b.WriteString("  " + failStyle.Bold(true).Render("✗ FAILED") + "  " +
			hintStyle.Render("fix the errors above before deploying") + "\n")
	}
	return b.String()
}

// RenderNoOutput explains that there is nothing to audit yet.
func RenderNoOutput(outputDir string) string {
	return "  " + warnStyle.Render("⚠") + " " +
		dimStyle.Render(fmt.Sprintf("No build output at %s, run the site build first. Nothing to check.", outputDir)) + "\n"
}

func countStyle(n int, style lipgloss.Style) string {
	if n == 0 {
		return passStyle.Render("0")
	}
	return style.Render(fmt.Sprintf("%d", n))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.Commit
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		status := passStyle.Render("pass")
		if !e.Passed {
			status = failStyle.Render("fail")
		}

		day := e.Timestamp
		if len(day) > 10 {
			day = day[:10]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s  %s  %s",
			dimStyle.Render(day),
			faintStyle.Render(hash),
			status,
			dimStyle.Render(fmt.Sprintf("%d files", e.Files)),
			countStyle(e.Errors, failStyle)+" errors",
			countStyle(e.Warnings, warnStyle)+" warnings",
		)

		if i > 0 {
			diff := e.Errors - entries[i-1].Errors
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
