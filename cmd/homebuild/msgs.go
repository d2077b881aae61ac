package homebuild

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Build a home directory from configuration manifests"
	MsgBuildShort      = "Link files and run scripts declared by the manifest"
	MsgPlanShort       = "Show what a build would do"
	MsgPlanLong        = "Plan loads the manifest and prints the pre-links, build scripts, post-links and user scripts a build would process, in order."
	MsgStatusShort     = "Show the state of every link a build would create"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgManLong         = "Generate man pages for homebuild and its commands into a directory."

	MsgDryRunNotice   = "DRY RUN MODE - No changes were made"
	MsgBuildComplete  = "Build complete: %d pre-links, %d build scripts, %d post-links, %d user scripts"
	MsgManWritten     = "Man pages written to %s"
	MsgVersionFormat  = "homebuild version %s\n  commit: %s\n  built:  %s\n"
	MsgNoCommandGiven = "no command specified"

	MsgErrLoadSettings = "failed to load settings: %w"
	MsgErrLoadManifest = "failed to load manifest: %w"

	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagSettings = "Settings file (default $XDG_CONFIG_HOME/homebuild/settings.toml)"
	MsgFlagManifest = "Root manifest to build from"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagDryRun   = "Print the plan without changing anything"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)
)
