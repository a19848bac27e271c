package errors

import (
	"fmt"
	"strings"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// FormatForTerminal formats a ConvertError for terminal output with ANSI colors
func (e ConvertError) FormatForTerminal() string {
	var sb strings.Builder

	// Error header with severity color
	severityColor := getSeverityColor(e.Severity)
	sb.WriteString(fmt.Sprintf("%s%s%s: %s\n",
		colorBold+severityColor,
		strings.Title(e.Severity.String()),
		colorReset,
		e.Message))

	// Location
	if e.Source.Line > 0 {
		sb.WriteString(fmt.Sprintf("  %s-->%s %s:%d\n",
			colorCyan,
			colorReset,
			e.Source.File,
			e.Source.Line))
	} else {
		sb.WriteString(fmt.Sprintf("  %s-->%s %s\n",
			colorCyan,
			colorReset,
			e.Source.File))
	}

	// Offending field if known
	if e.Source.Field != "" {
		sb.WriteString(fmt.Sprintf("   %sfield:%s %s\n",
			colorGray,
			colorReset,
			e.Source.Field))
	}

	// Hint if available
	if e.Hint != "" {
		sb.WriteString(fmt.Sprintf("\n%sHelp:%s %s\n",
			colorBold+colorCyan,
			colorReset,
			e.Hint))
	}

	// Related errors if any
	if len(e.Related) > 0 {
		sb.WriteString(fmt.Sprintf("\n%sRelated errors:%s\n", colorBold, colorReset))
		for i, related := range e.Related {
			if related.Source.Line > 0 {
				sb.WriteString(fmt.Sprintf("  %d. %s:%d: %s\n",
					i+1,
					related.Source.File,
					related.Source.Line,
					related.Message))
			} else {
				sb.WriteString(fmt.Sprintf("  %d. %s: %s\n",
					i+1,
					related.Source.File,
					related.Message))
			}
		}
	}

	return sb.String()
}

// getSeverityColor returns the ANSI color for a severity level
func getSeverityColor(severity Severity) string {
	switch severity {
	case Info:
		return colorBlue
	case Warning:
		return colorYellow
	case Error:
		return colorRed
	case Fatal:
		return colorRed + colorBold
	default:
		return colorReset
	}
}

// FormatSummary formats a summary of errors and warnings
func FormatSummary(errorCount, warningCount int) string {
	var parts []string

	if errorCount > 0 {
		parts = append(parts, fmt.Sprintf("%s%d error(s)%s",
			colorRed,
			errorCount,
			colorReset))
	}

	if warningCount > 0 {
		parts = append(parts, fmt.Sprintf("%s%d warning(s)%s",
			colorYellow,
			warningCount,
			colorReset))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("%sNo errors or warnings%s\n", colorBlue, colorReset)
	}

	return fmt.Sprintf("\n%sConversion failed with %s%s\n",
		colorBold,
		strings.Join(parts, " and "),
		colorReset)
}

// StripColors removes ANSI color codes from a string (useful for testing)
func StripColors(s string) string {
	// Remove all ANSI escape sequences
	result := s
	result = strings.ReplaceAll(result, colorReset, "")
	result = strings.ReplaceAll(result, colorRed, "")
	result = strings.ReplaceAll(result, colorYellow, "")
	result = strings.ReplaceAll(result, colorBlue, "")
	result = strings.ReplaceAll(result, colorCyan, "")
	result = strings.ReplaceAll(result, colorGray, "")
	result = strings.ReplaceAll(result, colorBold, "")

	// Remove any remaining escape sequences
	for strings.Contains(result, "\033[") {
		start := strings.Index(result, "\033[")
		end := strings.Index(result[start:], "m")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+1:]
	}

	return result
}
