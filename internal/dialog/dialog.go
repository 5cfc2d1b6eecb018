// Package dialog wraps the native file dialogs used by the front end.
package dialog

import (
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
)

// SaveFile asks where to save an exported plot. It returns "" with a nil
// error when the user cancels.
func SaveFile(defaultName string) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title("Export Plot"),
		zenity.ConfirmOverwrite(),
		zenity.Filename(defaultName),
		zenity.FileFilters{
			{Name: "PNG image", Patterns: []string{"*.png"}},
			{Name: "SVG image", Patterns: []string{"*.svg"}},
			{Name: "PDF document", Patterns: []string{"*.pdf"}},
		},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", fmt.Errorf("failed to open save dialog: %w", err)
	}
	return path, nil
}
