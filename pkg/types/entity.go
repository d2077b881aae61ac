package types

// ConfigEntity is a node in the configuration graph. Imports may be shared
// between parents, so the graph reachable from a root is a DAG rather than
// a tree. Entities are built once by a loader and never mutated afterwards.
type ConfigEntity struct {
	// Name labels the entity in logs, usually the manifest path it came from
	Name      string
	FileLinks []FileLink
	Scripts   []Script
	Imports   []*ConfigEntity
}

// FileLink declares a symlink at Destination pointing to Source.
// Pre and Post are independent: a link eligible for both phases is applied twice.
type FileLink struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Pre         bool   `json:"pre"`
	Post        bool   `json:"post"`
}

// Script declares an executable unit.
//
// Build scripts run during the build phase, ordered by Stage. User scripts
// are installed into the user bin directory. A script may be both.
type Script struct {
	Name   string `json:"name"`
	Source string `json:"source,omitempty"`
	// Text is only meaningful when HasText is set; an empty body is still a body.
	Text    string `json:"text,omitempty"`
	HasText bool   `json:"-"`
	Build   bool   `json:"build"`
	User    bool   `json:"user"`
	Stage   int    `json:"stage"`
}

// ContentKind tells how a script body reaches the shell.
type ContentKind int

const (
	// ContentInline is a command body declared in the configuration
	ContentInline ContentKind = iota
	// ContentFile is a path to a script file, run as a command
	ContentFile
)

func (k ContentKind) String() string {
	switch k {
	case ContentInline:
		return "inline"
	case ContentFile:
		return "file"
	default:
		return "unknown"
	}
}

// ScriptContent is what the shell is asked to interpret for a build script.
type ScriptContent struct {
	Kind ContentKind
	Body string
}

// Content picks the inline text when present and falls back to Source.
func (s Script) Content() ScriptContent {
	if s.HasText {
		return ScriptContent{Kind: ContentInline, Body: s.Text}
	}
	return ScriptContent{Kind: ContentFile, Body: s.Source}
}

// InlineScript is a convenience constructor for a script with inline text.
func InlineScript(name, text string) Script {
	return Script{Name: name, Text: text, HasText: true}
}
