// Package ui renders command results as styled terminal output, plain text
// or JSON.
package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/homebuild/pkg/ui/display"
	"github.com/arthur-debert/homebuild/pkg/ui/json"
	"github.com/arthur-debert/homebuild/pkg/ui/terminal"
	"github.com/arthur-debert/homebuild/pkg/ui/text"
)

// Renderer is implemented by every output format.
type Renderer interface {
	// RenderPlan shows the queues a build would execute
	RenderPlan(plan display.PlanResult) error

	// RenderStatus shows the on-disk state of every link
	RenderStatus(status display.StatusResult) error

	// RenderError shows a failure, including its code when it has one
	RenderError(err error) error

	// RenderMessage shows a one-line message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format writing to output.
// FormatAuto is resolved with DetectFormat.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(output), output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
