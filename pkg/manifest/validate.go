package manifest

import (
	"github.com/arthur-debert/homebuild/pkg/errors"
	"github.com/arthur-debert/homebuild/pkg/logging"
	"github.com/arthur-debert/homebuild/pkg/types"
)

// Validate walks every entity reachable from root and reports the first
// malformed link or script. A link that is neither pre nor post is legal
// but never applied, so it only logs a warning.
func Validate(root *types.ConfigEntity) error {
	logger := logging.GetLogger("manifest")
	seen := make(map[*types.ConfigEntity]bool)

	var walk func(e *types.ConfigEntity) error
	walk = func(e *types.ConfigEntity) error {
		if e == nil || seen[e] {
			return nil
		}
		seen[e] = true

		for _, link := range e.FileLinks {
			if err := validateLink(e, link); err != nil {
				return err
			}
			if !link.Pre && !link.Post {
				logger.Warn().
					Str("entity", e.Name).
					Str("link", link.Name).
					Msg("Link is neither pre nor post and will never be applied")
			}
		}

		for _, script := range e.Scripts {
			if err := validateScript(e, script); err != nil {
				return err
			}
		}

		for _, child := range e.Imports {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	return walk(root)
}

func validateLink(e *types.ConfigEntity, link types.FileLink) error {
	var problem string
	switch {
	case link.Name == "":
		problem = "link has no name"
	case link.Source == "":
		problem = "link %q has no source"
	case link.Destination == "":
		problem = "link %q has no destination"
	default:
		return nil
	}
	return invalid(e, problem, link.Name)
}

func validateScript(e *types.ConfigEntity, script types.Script) error {
	var problem string
	switch {
	case script.Name == "":
		problem = "script has no name"
	case script.Source == "" && !script.HasText:
		problem = "script %q has neither source nor text"
	case script.User && script.Source == "":
		problem = "user script %q has no source"
	default:
		return nil
	}
	return invalid(e, problem, script.Name)
}

func invalid(e *types.ConfigEntity, problem, name string) error {
	var err *errors.HomebuildError
	if name == "" {
		err = errors.NewConfigurationError("%s", problem)
	} else {
		err = errors.NewConfigurationError(problem, name)
	}
	return err.WithDetail("entity", e.Name)
}
