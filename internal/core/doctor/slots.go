package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/hay-kot/desknotify/internal/platform/freedesktop"
)

// SlotsCheck verifies the persisted slot store can be read. An unreadable
// store is fixable by deleting it, at the cost of losing track of the
// notifications currently on screen.
type SlotsCheck struct {
	path    string
	autofix bool
}

// NewSlotsCheck creates a check for the slot store at path. An empty path
// means the backend keeps no store.
func NewSlotsCheck(path string, autofix bool) *SlotsCheck {
	return &SlotsCheck{path: path, autofix: autofix}
}

func (c *SlotsCheck) Name() string {
	return "Slot Store"
}

func (c *SlotsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if c.path == "" {
		result.Items = append(result.Items, CheckItem{
			Label:  "slots",
			Status: StatusPass,
			Detail: "not used by this backend",
		})
		return result
	}

	store, err := freedesktop.OpenSlotStore(c.path)
	if err == nil {
		result.Items = append(result.Items, CheckItem{
			Label:  c.path,
			Status: StatusPass,
			Detail: fmt.Sprintf("%d tracked notification(s)", len(store.All())),
		})
		return result
	}

	if c.autofix {
		if rmErr := os.Remove(c.path); rmErr == nil {
			result.Items = append(result.Items, CheckItem{
				Label:  c.path,
				Status: StatusPass,
				Detail: "unreadable store removed",
			})
			return result
		}
	}

	result.Items = append(result.Items, CheckItem{
		Label:   c.path,
		Status:  StatusFail,
		Detail:  err.Error(),
		Fixable: true,
	})
	return result
}
