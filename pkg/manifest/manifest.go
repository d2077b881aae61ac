package manifest

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/homebuild/pkg/errors"
	"github.com/arthur-debert/homebuild/pkg/logging"
	"github.com/arthur-debert/homebuild/pkg/paths"
	"github.com/arthur-debert/homebuild/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of a manifest
type document struct {
	Imports []string      `toml:"imports" yaml:"imports"`
	Links   []linkEntry   `toml:"links" yaml:"links"`
	Scripts []scriptEntry `toml:"scripts" yaml:"scripts"`
}

type linkEntry struct {
	Name        string `toml:"name" yaml:"name"`
	Source      string `toml:"source" yaml:"source"`
	Destination string `toml:"destination" yaml:"destination"`
	Pre         bool   `toml:"pre" yaml:"pre"`
	Post        bool   `toml:"post" yaml:"post"`
}

type scriptEntry struct {
	Name   string  `toml:"name" yaml:"name"`
	Source string  `toml:"source" yaml:"source"`
	Text   *string `toml:"text" yaml:"text"`
	Build  bool    `toml:"build" yaml:"build"`
	User   bool    `toml:"user" yaml:"user"`
	Stage  int     `toml:"stage" yaml:"stage"`
}

// Loader reads manifests through a filesystem and memoizes them by absolute path.
type Loader struct {
	fs      types.FS
	entries map[string]*types.ConfigEntity
	stack   []string
	logger  zerolog.Logger
}

// NewLoader returns a loader reading from fsys
func NewLoader(fsys types.FS) *Loader {
	return &Loader{
		fs:      fsys,
		entries: make(map[string]*types.ConfigEntity),
		logger:  logging.GetLogger("manifest"),
	}
}

// Load is a shorthand for NewLoader(fsys).Load(path)
func Load(fsys types.FS, path string) (*types.ConfigEntity, error) {
	return NewLoader(fsys).Load(path)
}

// Load reads the manifest at path and everything it imports, then validates
// the resulting graph.
func (l *Loader) Load(path string) (*types.ConfigEntity, error) {
	abs, err := paths.Abs(path)
	if err != nil {
		return nil, err
	}

	root, err := l.load(abs)
	if err != nil {
		return nil, err
	}

	if err := Validate(root); err != nil {
		return nil, err
	}

	l.logger.Debug().
		Str("manifest", abs).
		Int("manifests", len(l.entries)).
		Msg("Manifest graph loaded")

	return root, nil
}

func (l *Loader) load(path string) (*types.ConfigEntity, error) {
	if entity, ok := l.entries[path]; ok {
		return entity, nil
	}

	for i, p := range l.stack {
		if p == path {
			chain := append(append([]string{}, l.stack[i:]...), path)
			return nil, errors.NewConfigurationError("import cycle: %s", strings.Join(chain, " -> ")).
				WithDetail("path", path)
		}
	}

	l.stack = append(l.stack, path)
	defer func() { l.stack = l.stack[:len(l.stack)-1] }()

	doc, err := l.read(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	entity := &types.ConfigEntity{Name: path}

	for _, link := range doc.Links {
		entity.FileLinks = append(entity.FileLinks, types.FileLink{
			Name:        link.Name,
			Source:      resolveSource(dir, link.Source),
			Destination: resolveDestination(link.Destination),
			Pre:         link.Pre,
			Post:        link.Post,
		})
	}

	for _, s := range doc.Scripts {
		script := types.Script{
			Name:   s.Name,
			Source: resolveSource(dir, s.Source),
			Build:  s.Build,
			User:   s.User,
			Stage:  s.Stage,
		}
		if s.Text != nil {
			script.Text = *s.Text
			script.HasText = true
		}
		entity.Scripts = append(entity.Scripts, script)
	}

	for _, imp := range doc.Imports {
		child, err := l.load(resolveSource(dir, imp))
		if err != nil {
			return nil, err
		}
		entity.Imports = append(entity.Imports, child)
	}

	l.entries[path] = entity

	l.logger.Trace().
		Str("manifest", path).
		Int("links", len(entity.FileLinks)).
		Int("scripts", len(entity.Scripts)).
		Int("imports", len(entity.Imports)).
		Msg("Manifest parsed")

	return entity, nil
}

func (l *Loader) read(path string) (document, error) {
	var doc document

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return doc, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read manifest %s", path).
			WithDetail("path", path)
	}

	if err := decode(path, data, &doc); err != nil {
		return doc, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse manifest %s", path).
			WithDetail("path", path)
	}

	return doc, nil
}

func decode(path string, data []byte, doc *document) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(doc); err != nil && err != io.EOF {
			return err
		}
		return nil
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(doc)
	}
}

// resolveSource expands ~ and variables, then anchors relative paths at dir
func resolveSource(dir, p string) string {
	if p == "" {
		return ""
	}
	p = paths.Expand(p)
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return filepath.Clean(p)
}

// resolveDestination expands ~ and variables; relative destinations live under home
func resolveDestination(p string) string {
	if p == "" {
		return ""
	}
	p = paths.Expand(p)
	if !filepath.IsAbs(p) {
		p = paths.Expand(filepath.Join("~", p))
	}
	return filepath.Clean(p)
}
