// Package display holds the view models handed to renderers.
package display

import (
	"github.com/arthur-debert/homebuild/pkg/builder"
	"github.com/arthur-debert/homebuild/pkg/symlink"
)

// Kind tells which queue a status entry comes from
type Kind string

const (
	KindPreLink    Kind = "pre-link"
	KindPostLink   Kind = "post-link"
	KindUserScript Kind = "user-script"
)

// PlanResult is the queue set a build would execute, without running it
type PlanResult struct {
	Manifest string         `json:"manifest"`
	Queues   builder.Queues `json:"queues"`
}

// StatusEntry is the on-disk state of one link a build would create
type StatusEntry struct {
	Kind        Kind              `json:"kind"`
	Name        string            `json:"name"`
	Source      string            `json:"source"`
	Destination string            `json:"destination"`
	State       symlink.LinkState `json:"state"`
}

// StatusResult reports every link a build would create
type StatusResult struct {
	Manifest string        `json:"manifest"`
	Entries  []StatusEntry `json:"entries"`
}

// Pending counts entries that a build would still change
func (r StatusResult) Pending() int {
	n := 0
	for _, e := range r.Entries {
		if e.State != symlink.StateLinked {
			n++
		}
	}
	return n
}
