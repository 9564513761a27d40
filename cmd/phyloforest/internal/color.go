package internal

import (
	"os"
	"strconv"

	"github.com/fatih/color"
)

var (
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgBlue, color.Bold)
	Hint    = color.New(color.FgCyan)

	NodeID = color.New(color.FgCyan, color.Bold)
	Metric = color.New(color.FgMagenta, color.Bold)
)

// InitColor initializes color output based on environment and config.
func InitColor(enableColor bool) {
	if noColor, _ := strconv.ParseBool(os.Getenv("NO_COLOR")); noColor {
		color.NoColor = true
		return
	}
	if !color.NoColor {
		color.NoColor = !enableColor
	}
}

func IsColorEnabled() bool {
	return !color.NoColor
}

func PrintSuccess(format string, args ...interface{}) {
	Success.Printf(format, args...)
}

func PrintError(format string, args ...interface{}) {
	Error.Printf(format, args...)
}

func PrintWarning(format string, args ...interface{}) {
	Warning.Printf(format, args...)
}

func PrintInfo(format string, args ...interface{}) {
	Info.Printf(format, args...)
}
