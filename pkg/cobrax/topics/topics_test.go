package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/dry-run.txt":        {Data: []byte("Information about dry-run mode")},
		"help/manifest.md":        {Data: []byte("# Manifest\n\nDetails")},
		"help/option-verbose.txt": {Data: []byte("More logging")},
		"help/config.txxt":        {Data: []byte("Configuration Guide")},
		"help/ignore.json":        {Data: []byte("{}")},
	}
}

func TestManager_Scan(t *testing.T) {
	t.Run("default_extensions", func(t *testing.T) {
		m := New(testFS(), Options{})
		require.NoError(t, m.Scan())

		assert.Equal(t, []string{"dry-run", "manifest", "option-verbose"}, m.List())

		topic, ok := m.Get("dry-run")
		require.True(t, ok)
		assert.Equal(t, "Information about dry-run mode", topic.Content)
		assert.Equal(t, "help/dry-run.txt", topic.Path)

		_, ok = m.Get("config")
		assert.False(t, ok)
	})

	t.Run("custom_extensions", func(t *testing.T) {
		m := New(testFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, m.Scan())
		assert.Equal(t, []string{"config"}, m.List())
	})

	t.Run("empty", func(t *testing.T) {
		m := New(fstest.MapFS{}, Options{})
		require.NoError(t, m.Scan())
		assert.Empty(t, m.List())
	})
}

func TestManager_GetFlagStyle(t *testing.T) {
	m := New(testFS(), Options{})
	require.NoError(t, m.Scan())

	for _, name := range []string{"--verbose", "-verbose", "verbose", "option-verbose"} {
		topic, ok := m.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "More logging", topic.Content)
	}
	_, ok := m.Get("--nope")
	assert.False(t, ok)
}

func TestManager_WriteIndex(t *testing.T) {
	m := New(testFS(), Options{})
	require.NoError(t, m.Scan())

	var buf bytes.Buffer
	m.WriteIndex(&buf, "homebuild")
	out := buf.String()

	assert.Contains(t, out, "General topics:\n  dry-run\n  manifest\n")
	assert.Contains(t, out, "Option topics:\n  --verbose\n")
	assert.Contains(t, out, "Use 'homebuild help <topic>'")

	buf.Reset()
	New(fstest.MapFS{}, Options{}).WriteIndex(&buf, "homebuild")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

type upperRenderer struct{}

func (upperRenderer) Render(content, ext string) string { return strings.ToUpper(content) + ext }

func TestInitialize(t *testing.T) {
	newRoot := func() (*cobra.Command, *bytes.Buffer) {
		root := &cobra.Command{Use: "homebuild", Short: "root help text"}
		root.AddCommand(&cobra.Command{Use: "build", Short: "build help text", Run: func(*cobra.Command, []string) {}})
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetErr(&buf)
		_, err := Initialize(root, testFS(), Options{Renderer: upperRenderer{}})
		require.NoError(t, err)
		return root, &buf
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"topic", []string{"help", "dry-run"}, "INFORMATION ABOUT DRY-RUN MODE.txt"},
		{"flag_topic", []string{"help", "--", "--verbose"}, "MORE LOGGING.txt"},
		{"index", []string{"help", "topics"}, "Available help topics:"},
		{"command", []string{"help", "build"}, "build help text"},
		{"root", []string{"help"}, "root help text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, buf := newRoot()
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPlainRenderer(t *testing.T) {
	assert.Equal(t, "# x", (&PlainRenderer{}).Render("# x", ".md"))
}

func TestGlamourRenderer(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 40}

	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))

	out := r.Render("# Title\n\nSome **bold** words", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
	assert.NotEqual(t, "# Title\n\nSome **bold** words", out)
}
