package manifest_test

import (
	"testing"

	hberrors "github.com/arthur-debert/homebuild/pkg/errors"
	"github.com/arthur-debert/homebuild/pkg/manifest"
	"github.com/arthur-debert/homebuild/pkg/testutil"
	"github.com/arthur-debert/homebuild/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		links   []types.FileLink
		scripts []types.Script
		wantErr string
	}{
		{
			name:  "valid",
			links: []types.FileLink{{Name: "a", Source: "/s", Destination: "/d", Pre: true}},
			scripts: []types.Script{
				types.InlineScript("inline", ""),
				{Name: "user", Source: "/bin/u", User: true},
			},
		},
		{
			name:  "link_without_phase_is_allowed",
			links: []types.FileLink{{Name: "a", Source: "/s", Destination: "/d"}},
		},
		{
			name:    "link_without_name",
			links:   []types.FileLink{{Source: "/s", Destination: "/d", Pre: true}},
			wantErr: "link has no name",
		},
		{
			name:    "link_without_source",
			links:   []types.FileLink{{Name: "a", Destination: "/d", Pre: true}},
			wantErr: `link "a" has no source`,
		},
		{
			name:    "script_without_content",
			scripts: []types.Script{{Name: "s", Build: true}},
			wantErr: `script "s" has neither source nor text`,
		},
		{
			name:    "user_script_with_text_only",
			scripts: []types.Script{{Name: "u", Text: "echo", HasText: true, User: true}},
			wantErr: `user script "u" has no source`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manifest.Validate(testutil.Entity("root", tt.links, tt.scripts))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, hberrors.IsErrorCode(err, hberrors.ErrConfigValid))
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, "root", hberrors.GetErrorDetails(err)["entity"])
		})
	}
}

func TestValidate_WalksImports(t *testing.T) {
	bad := testutil.Entity("bad", []types.FileLink{{Name: "x", Source: "/s", Pre: true}}, nil)
	shared := testutil.Entity("shared", nil, nil, bad)
	root := testutil.Entity("root", nil, nil, shared, shared)

	err := manifest.Validate(root)
	require.Error(t, err)
	assert.Equal(t, "bad", hberrors.GetErrorDetails(err)["entity"])
}

func TestValidate_Nil(t *testing.T) {
	assert.NoError(t, manifest.Validate(nil))
}
