// Package linear provides a synchronous, line-oriented renderer for manifest items.
package linear

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/catalog/internal/core/domain"
	"go.trai.ch/catalog/internal/ui/output"
	"go.trai.ch/catalog/internal/ui/style"
	"go.trai.ch/zerr"
)

// Format selects how items are written to stdout.
type Format string

const (
	// FormatText writes items grouped by folder.
	FormatText Format = "text"
	// FormatJSON writes items as an indented JSON array.
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", zerr.With(domain.ErrUnknownOutputFormat, "format", s)
	}
}

// Renderer implements ports.Renderer. Items go to stdout, progress and diagnostics to stderr.
type Renderer struct {
	stdout  io.Writer
	stderr  io.Writer
	output  *termenv.Output
	styles  *lipgloss.Renderer
	format  Format
	verbose bool

	mu sync.Mutex
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFormat sets the stdout format.
func WithFormat(f Format) Option {
	return func(r *Renderer) {
		r.format = f
	}
}

// WithVerbose makes the renderer report every completed span.
func WithVerbose(verbose bool) Option {
	return func(r *Renderer) {
		r.verbose = verbose
	}
}

// NewRenderer creates a new Renderer. Nil writers default to os.Stdout and os.Stderr.
func NewRenderer(stdout, stderr io.Writer, opts ...Option) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	styles := lipgloss.NewRenderer(stdout)
	styles.SetColorProfile(output.ColorProfile())

	r := &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: output.New(stderr),
		styles: styles,
		format: FormatText,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnItems writes items to stdout and a summary to stderr.
func (r *Renderer) OnItems(items []domain.ManifestItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.format == FormatJSON {
		return r.writeJSONLocked(items)
	}

	r.writeTextLocked(items)
	symbol := r.output.String(style.Check).Foreground(termenv.RGBColor(string(style.Green))).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %d item(s)\n", symbol, len(items))
	return nil
}

func (r *Renderer) writeJSONLocked(items []domain.ManifestItem) error {
	if items == nil {
		items = []domain.ManifestItem{}
	}
	enc := json.NewEncoder(r.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return zerr.Wrap(err, "failed to encode items")
	}
	return nil
}

// writeTextLocked groups consecutive items that share a folder under one heading.
// Must be called with r.mu held.
func (r *Renderer) writeTextLocked(items []domain.ManifestItem) {
	folderStyle := style.Folder(r.styles)
	nameStyle := style.Name(r.styles)
	mutedStyle := style.Muted(r.styles)

	current := ""
	for i, item := range items {
		if i == 0 || item.Folder != current {
			current = item.Folder
			heading := strings.Trim(current, "/")
			if heading == "" {
				heading = "/"
			}
			_, _ = fmt.Fprintln(r.stdout, folderStyle.Render(heading))
		}

		line := "  " + nameStyle.Render(item.Name) + " " + style.Arrow + " " + item.Href()
		if details := itemDetails(item); details != "" {
			line += " " + mutedStyle.Render("("+details+")")
		}
		_, _ = fmt.Fprintln(r.stdout, line)
	}
}

func itemDetails(item domain.ManifestItem) string {
	var parts []string
	if kind := item.Kind(); kind != "" {
		parts = append(parts, kind)
	}
	if item.Provider != "" {
		parts = append(parts, item.Provider)
	}
	return strings.Join(parts, ", ")
}

// OnLoading reports an outstanding load.
func (r *Renderer) OnLoading(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := style.Circle + " loading " + strings.Join(paths, ", ")
	_, _ = fmt.Fprintln(r.stderr, r.output.String(msg).Faint().String())
}

// OnFailure reports a failed load.
func (r *Renderer) OnFailure(err error) {
	if err == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	symbol := r.output.String(style.Cross).Foreground(termenv.RGBColor(string(style.Red))).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %v\n", symbol, err)
}

// OnSpanComplete reports a finished span in verbose mode.
func (r *Renderer) OnSpanComplete(name string, duration time.Duration, err error) {
	if !r.verbose {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	duration = duration.Round(time.Millisecond)

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.RGBColor(string(style.Red))).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
		return
	}
	symbol := r.output.String(style.Check).Foreground(termenv.RGBColor(string(style.Green))).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", prefix, symbol, duration)
}
