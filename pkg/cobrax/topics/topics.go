// Package topics adds file-based help topics to a Cobra application.
// Topics are read from an fs.FS, typically an embedded directory of
// markdown files, and served through "help <topic>".
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one help document
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Options configures a Manager
type Options struct {
	// Extensions lists the file extensions read as topics, [".txt", ".md"] by default
	Extensions []string

	// Renderer formats topic content, PlainRenderer by default
	Renderer Renderer
}

// Manager holds the topics found in a filesystem
type Manager struct {
	fsys       fs.FS
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// New creates a Manager reading topics from fsys
func New(fsys fs.FS, opts Options) *Manager {
	m := &Manager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}
	return m
}

// Scan reads every topic file in the filesystem
func (m *Manager) Scan() error {
	return fs.WalkDir(m.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !m.supported(path.Ext(p)) {
			return nil
		}

		content, err := fs.ReadFile(m.fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Get looks a topic up by name. Flag-style names (--dry-run) also match
// an "option-dry-run" topic.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")

	if topic, ok := m.topics[name]; ok {
		return topic, true
	}
	topic, ok := m.topics["option-"+name]
	return topic, ok
}

// List returns the topic names in alphabetical order
func (m *Manager) List() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render formats a topic with the configured renderer
func (m *Manager) Render(topic *Topic) string {
	return m.renderer.Render(topic.Content, path.Ext(topic.Path))
}

// WriteIndex prints the topic list, option topics apart from general ones
func (m *Manager) WriteIndex(w io.Writer, program string) {
	names := m.List()
	if len(names) == 0 {
		_, _ = fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, name := range names {
		if opt, ok := strings.CutPrefix(name, "option-"); ok {
			options = append(options, opt)
		} else {
			general = append(general, name)
		}
	}

	_, _ = fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		_, _ = fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			_, _ = fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		_, _ = fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			_, _ = fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	_, _ = fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
}

// Initialize scans fsys and replaces the root's help command with one that
// also serves topics.
func Initialize(rootCmd *cobra.Command, fsys fs.FS, opts Options) (*Manager, error) {
	m := New(fsys, opts)
	if err := m.Scan(); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}

	originalHelp := rootCmd.HelpFunc()
	program := rootCmd.Name()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + program + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + program + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.List()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				originalHelp(rootCmd, args)
				return
			}
			if args[0] == "topics" {
				m.WriteIndex(cmd.OutOrStdout(), program)
				return
			}
			if topic, ok := m.Get(args[0]); ok {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), m.Render(topic))
				return
			}

			// a command path
			target, _, err := rootCmd.Find(args)
			if err != nil || target == nil {
				originalHelp(rootCmd, args)
				return
			}
			originalHelp(target, nil)
		},
	}

	for _, c := range rootCmd.Commands() {
		if c.Name() == "help" {
			rootCmd.RemoveCommand(c)
			break
		}
	}
	rootCmd.SetHelpCommand(helpCmd)

	return m, nil
}
