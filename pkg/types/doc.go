// Package types defines the configuration entities consumed by the build
// pipeline (ConfigEntity, FileLink, Script) and the filesystem interface
// every component performs its side effects through.
package types
