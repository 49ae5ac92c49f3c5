package notify

import "context"

// UpdateResult reports the outcome of updating a posted notification.
type UpdateResult int

const (
	// UpdateSucceeded means the notification was found and updated.
	UpdateSucceeded UpdateResult = iota
	// UpdateNotFound means the platform no longer has the notification,
	// usually because the user dismissed it.
	UpdateNotFound
)

func (r UpdateResult) String() string {
	switch r {
	case UpdateSucceeded:
		return "succeeded"
	case UpdateNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Platform is the OS notification store. Calls for the same identity must
// not run concurrently; calls for different identities may.
type Platform interface {
	// Enabled reports whether the user or OS allows this application to show notifications.
	Enabled(ctx context.Context) (bool, error)
	// Show posts content under id, replacing any notification already in that slot.
	Show(ctx context.Context, content Content, id Identity) error
	// Update replaces the bound progress data of the notification in slot id.
	Update(ctx context.Context, data map[string]string, id Identity) (UpdateResult, error)
	// Remove deletes the notification in slot id. Removing an empty slot is not an error.
	Remove(ctx context.Context, id Identity) error
	// Clear removes every notification posted by this application.
	Clear(ctx context.Context) error
}

// Activation is delivered when the user clicks or answers a notification.
type Activation struct {
	Argument  string
	UserInput map[string]string
}

// Arguments parses the activation argument string.
func (a Activation) Arguments() Arguments {
	return ParseArguments(a.Argument)
}

// ActivationSource delivers activation events. The returned function
// removes the handler.
type ActivationSource interface {
	OnActivated(handler func(Activation)) (unsubscribe func())
}

// Installation describes how the application was deployed.
type Installation interface {
	// IsPackaged reports whether the application runs from a managed package.
	IsPackaged() bool
	// Uninstall clears scheduled and active notifications and any state
	// registered for the application.
	Uninstall(ctx context.Context) error
}
