// Package builder turns a ConfigEntity graph into filesystem side effects.
//
// A build runs five phases in a fixed order:
//
//	populate   flatten the graph breadth-first into four queues, then
//	           stable-sort the build scripts by stage
//	link-pre   symlink every pre link
//	run-build  run every build script
//	link-post  symlink every post link
//	link-user  install every user script into the user bin directory
//
// The first error aborts the build. Nothing already linked or run is
// undone, and nothing is retried.
//
// Shared imports are visited once per import path unless VisitOnce is set,
// so a diamond-shaped graph applies the shared entity's links and runs its
// scripts more than once.
package builder
