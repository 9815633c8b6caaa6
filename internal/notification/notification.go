// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/panes/internal/logger"
)

// AppName is the title used for every notification.
const AppName = "panes"

type notifyFunc func(title, message string, icon any) error

var (
	mu     sync.Mutex
	notify notifyFunc = beeep.Notify
)

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	mu.Lock()
	defer mu.Unlock()
	notify = fn
}

// ResetNotifier restores beeep as the notifier.
func ResetNotifier() {
	SetNotifier(beeep.Notify)
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title, "message", message)

	mu.Lock()
	fn := notify
	mu.Unlock()

	// Empty icon: beeep picks the platform default
	err := fn(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// PanelFaulted tells the user that a panel stopped responding to actions.
func PanelFaulted(panel string, cause error) error {
	msg := panel + " stopped after an error"
	if cause != nil {
		msg = fmt.Sprintf("%s stopped: %v", panel, cause)
	}
	return Send(AppName, msg)
}
