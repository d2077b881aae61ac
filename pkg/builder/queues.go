package builder

import (
	"sort"

	"github.com/arthur-debert/homebuild/pkg/types"
)

// Queues holds the work collected from a configuration graph, in
// execution order.
type Queues struct {
	Pre   []types.FileLink `json:"pre"`
	Post  []types.FileLink `json:"post"`
	Build []types.Script   `json:"build"`
	User  []types.Script   `json:"user"`
}

// Len is the total number of queued items
func (q Queues) Len() int {
	return len(q.Pre) + len(q.Post) + len(q.Build) + len(q.User)
}

// PopulateOptions tunes the traversal
type PopulateOptions struct {
	// VisitOnce skips entities already reached through another import path
	VisitOnce bool
}

// Populate walks the graph rooted at root breadth-first and collects every
// eligible link and script. The build queue comes back sorted by stage.
func Populate(root *types.ConfigEntity, opts PopulateOptions) Queues {
	var q Queues
	if root == nil {
		return q
	}

	visited := make(map[*types.ConfigEntity]bool)
	pending := []*types.ConfigEntity{root}

	for len(pending) > 0 {
		entity := pending[0]
		pending = pending[1:]

		if entity == nil {
			continue
		}
		if opts.VisitOnce {
			if visited[entity] {
				continue
			}
			visited[entity] = true
		}

		for _, link := range entity.FileLinks {
			if link.Pre {
				q.Pre = append(q.Pre, link)
			}
			if link.Post {
				q.Post = append(q.Post, link)
			}
		}

		for _, script := range entity.Scripts {
			if script.Build {
				q.Build = append(q.Build, script)
			}
			if script.User {
				q.User = append(q.User, script)
			}
		}

		pending = append(pending, entity.Imports...)
	}

	SortBuildScripts(q.Build)
	return q
}

// SortBuildScripts orders scripts by ascending stage. Scripts sharing a
// stage keep their relative order.
func SortBuildScripts(scripts []types.Script) {
	sort.SliceStable(scripts, func(i, j int) bool {
		return scripts[i].Stage < scripts[j].Stage
	})
}
