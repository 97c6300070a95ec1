package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/failsight/failsight/schema"
	"github.com/fatih/color"
)

// Impact label constants.
const (
	CriticalValue = "Critical" // Critical impact
	HighValue     = "High"     // High impact
	ModerateValue = "Moderate" // Moderate impact
	LowValue      = "Low"      // Low impact
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // standard danger
	HighColor     = color.New(color.FgMagenta, color.Bold) // strong, distinct warning
	ModerateColor = color.New(color.FgYellow)              // standard caution, not bold
	LowColor      = color.New(color.FgCyan)                // informational signal
	GoodColor     = color.New(color.FgGreen)               // healthy / confident signal
)

// GetPlainLabel returns a plain text impact label for an error count. This
// is the core logic used for JSON and table printing.
func GetPlainLabel(errorCount int) string {
	switch {
	case errorCount >= 10:
		return CriticalValue
	case errorCount >= 5:
		return HighValue
	case errorCount >= 2:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored impact label for console output (table).
// It uses GetPlainLabel to determine the string, then applies the color.
func GetColorLabel(errorCount int) string {
	text := GetPlainLabel(errorCount)

	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// GetConfidenceLabel returns a colored rendering of a confidence level.
func GetConfidenceLabel(level schema.ConfidenceLevel) string {
	switch level {
	case schema.HighConfidence:
		return GoodColor.Sprint(string(level))
	case schema.MediumHighConfidence:
		return ModerateColor.Sprint(string(level))
	default:
		return HighColor.Sprint(string(level))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It returns os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".failsight_history.db"
	}
	return filepath.Join(homeDir, ".failsight_history.db")
}

// TruncateText truncates a string to a maximum width with an ellipsis
// suffix. Requires maxWidth > 3 so there is room for the ellipsis and at
// least one character of content.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
