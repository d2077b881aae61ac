// Package paths provides centralized path handling for homebuild.
//
// It expands user-supplied paths (~ and $VARIABLES) and locates the files
// homebuild keeps for itself, following the XDG Base Directory
// specification.
//
// # Environment Variables
//
//   - HOMEBUILD_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/homebuild)
//   - HOMEBUILD_STATE_DIR: Override the state directory (default: $XDG_STATE_HOME/homebuild)
//
// # Files
//
//   - Settings: <config dir>/settings.toml
//   - Log: <state dir>/homebuild.log
package paths
