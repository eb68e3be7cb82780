package fidelity

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Minimum terminal size for the full profile.
const (
	MinFullWidth  = 100
	MinFullHeight = 30
)

// Capabilities describes the output device.
type Capabilities struct {
	ColorProfile termenv.Profile
	Width        int
	Height       int
	IsTerminal   bool
}

// Classify maps capabilities to a device class. Anything short of 256
// colours, or smaller than MinFullWidth x MinFullHeight, is constrained.
func Classify(c Capabilities) DeviceClass {
	if !c.IsTerminal {
		return DeviceFull
	}
	switch c.ColorProfile {
	case termenv.Ascii, termenv.ANSI:
		return DeviceConstrained
	}
	if c.Width > 0 && c.Height > 0 && (c.Width < MinFullWidth || c.Height < MinFullHeight) {
		return DeviceConstrained
	}
	return DeviceFull
}

// StdoutCapabilities reads the capabilities of the process's standard output.
func StdoutCapabilities() Capabilities {
	fd := int(os.Stdout.Fd())
	caps := Capabilities{
		ColorProfile: termenv.NewOutput(os.Stdout).Profile,
		IsTerminal:   term.IsTerminal(fd),
	}
	if caps.IsTerminal {
		if w, h, err := term.GetSize(fd); err == nil {
			caps.Width, caps.Height = w, h
		}
	}
	return caps
}

// Detect resolves the configured device setting. "auto" (or empty) inspects
// stdout once; any other value must name a class.
func Detect(setting string, inspect func() Capabilities) (DeviceClass, error) {
	switch setting {
	case "", "auto":
		if inspect == nil {
			inspect = StdoutCapabilities
		}
		return Classify(inspect()), nil
	default:
		return ParseDeviceClass(setting)
	}
}
