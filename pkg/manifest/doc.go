// Package manifest loads a configuration graph from manifest files.
//
// A manifest is a TOML (or YAML, by extension) document declaring file
// links, scripts and imports of other manifests:
//
//	imports = ["shell/zsh.toml", "git.toml"]
//
//	[[links]]
//	name        = "zshrc"
//	source      = "zsh/zshrc"
//	destination = "~/.zshrc"
//	pre         = true
//
//	[[scripts]]
//	name  = "brew"
//	text  = "brew bundle --file=Brewfile"
//	build = true
//	stage = 1
//
// Every manifest path maps to exactly one entity, so two manifests importing
// the same file share the same *types.ConfigEntity. Import cycles are
// rejected.
package manifest
