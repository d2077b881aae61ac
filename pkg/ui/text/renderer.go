// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/homebuild/pkg/errors"
	"github.com/arthur-debert/homebuild/pkg/types"
	"github.com/arthur-debert/homebuild/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
	err    error
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// printf remembers the first write error so callers check once
func (r *Renderer) printf(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.output, format, args...)
}

func (r *Renderer) flush() error {
	err := r.err
	r.err = nil
	return err
}

// RenderPlan lists every queue in execution order
func (r *Renderer) RenderPlan(plan display.PlanResult) error {
	q := plan.Queues
	r.printf("Plan for %s\n", plan.Manifest)

	r.links("Pre-links", q.Pre)

	r.printf("\nBuild scripts:\n")
	if len(q.Build) == 0 {
		r.printf("  (none)\n")
	}
	for _, s := range q.Build {
		r.printf("  [stage %d] %s  %s\n", s.Stage, s.Name, display.DescribeScript(s))
	}

	r.links("Post-links", q.Post)

	r.printf("\nUser scripts:\n")
	if len(q.User) == 0 {
		r.printf("  (none)\n")
	}
	for _, s := range q.User {
		r.printf("  %s  %s\n", s.Name, s.Source)
	}

	return r.flush()
}

func (r *Renderer) links(title string, links []types.FileLink) {
	r.printf("\n%s:\n", title)
	if len(links) == 0 {
		r.printf("  (none)\n")
	}
	for _, l := range links {
		r.printf("  %s  %s\n", l.Name, display.DescribeLink(l.Destination, l.Source))
	}
}

// RenderStatus prints one line per link followed by a summary
func (r *Renderer) RenderStatus(status display.StatusResult) error {
	r.printf("Status for %s\n\n", status.Manifest)
	for _, e := range status.Entries {
		r.printf("  %-13s %-12s %s  %s\n", e.State, e.Kind, e.Name, display.DescribeLink(e.Destination, e.Source))
	}

	if pending := status.Pending(); pending == 0 {
		r.printf("\nEverything is linked.\n")
	} else {
		r.printf("\n%d of %d links need a build.\n", pending, len(status.Entries))
	}
	return r.flush()
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	r.printf("Error: %v\n", err)
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		r.printf("Code: %s\n", code)
	}
	return r.flush()
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	r.printf("%s\n", msg)
	return r.flush()
}
