// Package executor runs build scripts.
//
// Each script is handed to a shell with -c, synchronously, with the
// parent's standard streams attached. Inline text is interpreted as shell
// code and a file reference is invoked as a command, so both run with the
// invoking user's privileges: configuration is trusted input.
package executor
