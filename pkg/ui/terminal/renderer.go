// Package terminal provides styled terminal output
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/homebuild/pkg/errors"
	"github.com/arthur-debert/homebuild/pkg/types"
	"github.com/arthur-debert/homebuild/pkg/ui/display"
	"github.com/arthur-debert/homebuild/pkg/ui/styles"
	"github.com/pterm/pterm"
)

// Renderer renders results with lipgloss layout styles and pterm badges
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

func (r *Renderer) write(s string) error {
	_, err := io.WriteString(r.output, s)
	return err
}

// RenderPlan shows the four queues as sections
func (r *Renderer) RenderPlan(plan display.PlanResult) error {
	q := plan.Queues
	var b strings.Builder

	b.WriteString(styles.Get("Header").Render("Plan for "+plan.Manifest) + "\n")

	section(&b, "Pre-links", len(q.Pre))
	writeLinks(&b, q.Pre)

	section(&b, "Build scripts", len(q.Build))
	for _, s := range q.Build {
		fmt.Fprintf(&b, "  %s%s  %s\n",
			styles.Get("Stage").Render(fmt.Sprintf("stage %d", s.Stage)),
			styles.Get("Name").Render(s.Name),
			styles.Get("FilePath").Render(display.DescribeScript(s)))
	}

	section(&b, "Post-links", len(q.Post))
	writeLinks(&b, q.Post)

	section(&b, "User scripts", len(q.User))
	for _, s := range q.User {
		fmt.Fprintf(&b, "  %s  %s\n", styles.Get("Name").Render(s.Name), styles.Get("FilePath").Render(s.Source))
	}

	return r.write(b.String())
}

func section(b *strings.Builder, title string, n int) {
	b.WriteString(styles.Get("Section").Render(fmt.Sprintf("%s (%d)", title, n)) + "\n")
	if n == 0 {
		b.WriteString("  " + styles.Get("Muted").Render("nothing to do") + "\n")
	}
}

func writeLinks(b *strings.Builder, links []types.FileLink) {
	for _, l := range links {
		fmt.Fprintf(b, "  %s  %s\n",
			styles.Get("Name").Render(l.Name),
			styles.Get("FilePath").Render(display.DescribeLink(l.Destination, l.Source)))
	}
}

// RenderStatus shows a colored state badge per link and a summary line
func (r *Renderer) RenderStatus(status display.StatusResult) error {
	var b strings.Builder

	b.WriteString(styles.Get("Header").Render("Status for "+status.Manifest) + "\n")
	for _, e := range status.Entries {
		fmt.Fprintf(&b, "  %s %s  %s  %s\n",
			StateStyle(e.State).Render(string(e.State)),
			pterm.NewStyle(pterm.FgGray).Sprint(e.Kind),
			styles.Get("Name").Render(e.Name),
			styles.Get("FilePath").Render(display.DescribeLink(e.Destination, e.Source)))
	}

	b.WriteString("\n")
	if pending := status.Pending(); pending == 0 {
		b.WriteString(styles.Get("Success").Render("Everything is linked.") + "\n")
	} else {
		b.WriteString(styles.Get("Warning").Render(fmt.Sprintf("%d of %d links need a build.", pending, len(status.Entries))) + "\n")
	}

	return r.write(b.String())
}

// RenderError prints the error with pterm's error prefix
func (r *Renderer) RenderError(err error) error {
	line := fmt.Sprintf("%s %s\n", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		line += fmt.Sprintf("%s %s\n", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint("code "+string(code)))
	}
	return r.write(line)
}

// RenderMessage prints an informational line
func (r *Renderer) RenderMessage(msg string) error {
	return r.write(pterm.Info.MessageStyle.Sprint(msg) + "\n")
}
