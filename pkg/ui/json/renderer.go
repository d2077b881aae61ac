// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/homebuild/pkg/errors"
	"github.com/arthur-debert/homebuild/pkg/ui/display"
)

// Renderer writes one indented JSON document per call
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderPlan encodes the plan
func (r *Renderer) RenderPlan(plan display.PlanResult) error {
	return r.encoder.Encode(plan)
}

// RenderStatus encodes the status report with a pending count
func (r *Renderer) RenderStatus(status display.StatusResult) error {
	return r.encoder.Encode(struct {
		display.StatusResult
		Pending int `json:"pending"`
	}{status, status.Pending()})
}

// RenderError encodes the error message, code and details
func (r *Renderer) RenderError(err error) error {
	obj := map[string]interface{}{
		"error": err.Error(),
		"code":  errors.GetErrorCode(err),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		obj["details"] = details
	}
	return r.encoder.Encode(obj)
}

// RenderMessage encodes a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
