package viewer

// Command is a typed message from the host bridge (menus, keyboard, file
// watcher). Commands are consumed one at a time by the loop, preserving the
// single-threaded ordering guarantee without depending on an event-loop
// runtime.
type Command interface{ isCommand() }

// OpenDocument loads a new document from disk.
type OpenDocument struct{ Path string }

// FileChanged reports that the document changed on disk; triggers a reload.
type FileChanged struct{ Path string }

// SetTheme switches between light, dark, sepia, and custom.
type SetTheme struct{ Name string }

// SetCustomColors installs picked colors and enables the overlay path.
type SetCustomColors struct{ Foreground, Background string }

// Navigation commands.
type (
	NextPage     struct{}
	PreviousPage struct{}
	GoToPage     struct{ Page int }
)

// Zoom commands.
type (
	ZoomIn    struct{}
	ZoomOut   struct{}
	ZoomReset struct{}
	SetZoom   struct{ Value float64 }
)

// Fit commands derive a zoom level from the page's intrinsic size.
type (
	FitHeight        struct{}
	FitWidthFraction struct{ Fraction float64 }
)

// Resize updates the logical viewport and device pixel ratio.
type Resize struct {
	Width            int
	Height           int
	DevicePixelRatio float64
}

func (OpenDocument) isCommand()     {}
func (FileChanged) isCommand()      {}
func (SetTheme) isCommand()         {}
func (SetCustomColors) isCommand()  {}
func (NextPage) isCommand()         {}
func (PreviousPage) isCommand()     {}
func (GoToPage) isCommand()         {}
func (ZoomIn) isCommand()           {}
func (ZoomOut) isCommand()          {}
func (ZoomReset) isCommand()        {}
func (SetZoom) isCommand()          {}
func (FitHeight) isCommand()        {}
func (FitWidthFraction) isCommand() {}
func (Resize) isCommand()           {}
