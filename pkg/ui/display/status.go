package display

import (
	"github.com/arthur-debert/homebuild/pkg/builder"
	"github.com/arthur-debert/homebuild/pkg/symlink"
	"github.com/arthur-debert/homebuild/pkg/types"
	"github.com/arthur-debert/homebuild/pkg/userscripts"
)

// CollectStatus inspects every destination the queues would link.
// binDir must already be absolute.
func CollectStatus(fsys types.FS, manifest string, q builder.Queues, binDir string) (StatusResult, error) {
	result := StatusResult{Manifest: manifest, Entries: []StatusEntry{}}

	add := func(kind Kind, name, source, destination string) error {
		state, err := symlink.Check(fsys, source, destination)
		if err != nil {
			return err
		}
		result.Entries = append(result.Entries, StatusEntry{
			Kind:        kind,
			Name:        name,
			Source:      source,
			Destination: destination,
			State:       state,
		})
		return nil
	}

	for _, link := range q.Pre {
		if err := add(KindPreLink, link.Name, link.Source, link.Destination); err != nil {
			return result, err
		}
	}
	for _, link := range q.Post {
		if err := add(KindPostLink, link.Name, link.Source, link.Destination); err != nil {
			return result, err
		}
	}
	for _, script := range q.User {
		if err := add(KindUserScript, script.Name, script.Source, userscripts.Destination(binDir, script)); err != nil {
			return result, err
		}
	}

	return result, nil
}
