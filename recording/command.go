package recording

import (
	"fmt"
	"image/color"

	"github.com/gogpu/countdown/surface"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdFillRect CommandType = iota // Fill a rectangle
	CmdDrawText                    // Draw text anchored at top-center
)

var commandTypeNames = [...]string{
	CmdFillRect: "FillRect",
	CmdDrawText: "DrawText",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is implemented by all recorded commands.
type Command interface {
	Type() CommandType
}

// FillRectCommand fills an axis-aligned rectangle.
type FillRectCommand struct {
	X, Y, W, H float64
	Color      color.RGBA
}

// Type implements Command.
func (FillRectCommand) Type() CommandType { return CmdFillRect }

func (c FillRectCommand) String() string {
	return fmt.Sprintf("FillRect(%g,%g %gx%g #%02x%02x%02x)", c.X, c.Y, c.W, c.H, c.Color.R, c.Color.G, c.Color.B)
}

// DrawTextCommand draws a string with its top-center at (X, Y).
type DrawTextCommand struct {
	Text  string
	X, Y  float64
	Font  surface.Font
	Color color.RGBA
}

// Type implements Command.
func (DrawTextCommand) Type() CommandType { return CmdDrawText }

func (c DrawTextCommand) String() string {
	return fmt.Sprintf("DrawText(%q at %g,%g size %g)", c.Text, c.X, c.Y, c.Font.Size)
}
