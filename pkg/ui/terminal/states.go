package terminal

import (
	"github.com/arthur-debert/homebuild/pkg/symlink"
	"github.com/arthur-debert/homebuild/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
)

// StateStyle maps a link state to its badge style
func StateStyle(state symlink.LinkState) lipgloss.Style {
	switch state {
	case symlink.StateLinked:
		return styles.Get("Linked")
	case symlink.StateMissing:
		return styles.Get("Missing")
	case symlink.StateWrongTarget:
		return styles.Get("WrongTarget")
	case symlink.StateOccupied:
		return styles.Get("Occupied")
	default:
		return styles.Get("Muted")
	}
}
