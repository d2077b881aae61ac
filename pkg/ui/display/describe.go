package display

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/homebuild/pkg/types"
)

// DescribeScript summarizes what a build script runs, on one line
func DescribeScript(script types.Script) string {
	content := script.Content()
	if content.Kind == types.ContentFile {
		return content.Body
	}

	body := strings.TrimSpace(content.Body)
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[:i] + " ..."
	}
	return fmt.Sprintf("inline: %s", body)
}

// DescribeLink renders a link as "destination -> source"
func DescribeLink(destination, source string) string {
	return destination + " -> " + source
}
