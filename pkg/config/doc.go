// Package config loads the settings lookup consumed by the build pipeline.
//
// Settings are layered with koanf: the built-in defaults table, then an
// optional TOML or YAML settings file, then HOMEBUILD_* environment
// variables. The result is an explicit *Settings value; nothing here is
// global.
//
// Keys:
//
//	user-scripts-bin  directory user scripts are linked into (default ~/.bin)
//	script-shell      shell used to run build scripts (default /bin/sh)
//	script-timeout    per build script limit, 0s for none (default 0s)
//	visit-once        visit shared imports once (default false)
package config
