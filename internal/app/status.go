package app

import "fmt"

const (
	StatusStopped              = "Status: Stopped"
	StatusRunning              = "Status: Running"
	StatusNeedSetup            = "Status: Please set folder and keybind"
	StatusRegisterFailed       = "Status: Could not register keybind"
	StatusPressKey             = "Press any key to set as keybind..."
	StatusCaptureTimeout       = "Status: Keybind capture timed out"
	StatusFolderUnavailable    = "Status: Folder unavailable"
	StatusClipboardUnavailable = "Status: Clipboard unavailable"
	StatusDialogUnavailable    = "Status: Folder dialog unavailable"
)

func StatusCopied(name string) string {
	return fmt.Sprintf("Copied to clipboard: %s", name)
}

func StatusUnsupportedKey(name string) string {
	return fmt.Sprintf("Status: Unsupported key %s", name)
}
