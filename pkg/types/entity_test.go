package types_test

import (
	"testing"

	"github.com/arthur-debert/homebuild/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestScriptContent(t *testing.T) {
	tests := []struct {
		name     string
		script   types.Script
		wantKind types.ContentKind
		wantBody string
	}{
		{
			name:     "text_takes_precedence",
			script:   types.Script{Name: "s", Source: "/cfg/s.sh", Text: "echo hi", HasText: true},
			wantKind: types.ContentInline,
			wantBody: "echo hi",
		},
		{
			name:     "empty_text_is_still_text",
			script:   types.Script{Name: "s", Source: "/cfg/s.sh", HasText: true},
			wantKind: types.ContentInline,
			wantBody: "",
		},
		{
			name:     "falls_back_to_source",
			script:   types.Script{Name: "s", Source: "/cfg/s.sh"},
			wantKind: types.ContentFile,
			wantBody: "/cfg/s.sh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := tt.script.Content()
			assert.Equal(t, tt.wantKind, content.Kind)
			assert.Equal(t, tt.wantBody, content.Body)
		})
	}
}

func TestInlineScript(t *testing.T) {
	s := types.InlineScript("fail", "exit 1")
	assert.True(t, s.HasText)
	assert.Equal(t, "inline", s.Content().Kind.String())
}
