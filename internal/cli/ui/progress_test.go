package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// TestSpinnerStartStop tests basic spinner lifecycle and goroutine cleanup
func TestSpinnerStartStop(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf, SpinnerOptions{
		Message:  "Converting metadata",
		NoColor:  true,
		Interval: 50 * time.Millisecond,
	})

	spinner.Start()

	// Let it animate for a bit
	time.Sleep(150 * time.Millisecond)

	spinner.Stop()

	if !strings.Contains(buf.String(), "Converting metadata") {
		t.Errorf("Expected spinner to show its message, got: %s", buf.String())
	}

	// Verify clearing sequence was written
	if !strings.Contains(buf.String(), "\r\033[K") {
		t.Error("Expected spinner to clear the line on stop")
	}
}

// TestSpinnerSuccess tests the Success method
func TestSpinnerSuccess(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf, SpinnerOptions{
		Message: "Reading records",
		NoColor: true,
	})

	spinner.Start()
	time.Sleep(50 * time.Millisecond)
	spinner.Success("Documents written")

	output := buf.String()

	if !strings.Contains(output, "✓") {
		t.Error("Expected success symbol ✓")
	}
	if !strings.Contains(output, "Documents written") {
		t.Errorf("Expected success message, got: %s", output)
	}
}

// TestSpinnerError tests the Error method
func TestSpinnerError(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf, SpinnerOptions{
		Message: "Reading records",
		NoColor: true,
	})

	spinner.Start()
	time.Sleep(50 * time.Millisecond)
	spinner.Error("Conversion failed")

	output := buf.String()

	if !strings.Contains(output, "❌") {
		t.Error("Expected error symbol ❌")
	}
	if !strings.Contains(output, "Conversion failed") {
		t.Errorf("Expected error message, got: %s", output)
	}
}

// TestSpinnerNoColor verifies NoColor flag disables colors
func TestSpinnerNoColor(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf, SpinnerOptions{
		Message: "Converting metadata",
		NoColor: true,
	})

	spinner.Start()
	time.Sleep(100 * time.Millisecond)
	spinner.Stop()

	output := buf.String()

	// With NoColor=true, there should be no ANSI color codes (except clear sequence)
	lines := strings.Split(output, "\n")
	for _, line := range lines {
		if line == "\r\033[K" || line == "" {
			continue
		}
		if strings.Contains(line, "\x1b[3") && !strings.Contains(line, "\x1b[K") {
			t.Errorf("Expected no color codes with NoColor=true, but found them in: %q", line)
		}
	}
}

// TestSpinnerUpdateMessage tests changing the spinner message
func TestSpinnerUpdateMessage(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf, SpinnerOptions{
		Message: "Reading records",
		NoColor: true,
	})

	spinner.Start()
	time.Sleep(50 * time.Millisecond)

	spinner.UpdateMessage("Writing documents")
	time.Sleep(50 * time.Millisecond)

	spinner.Stop()

	output := buf.String()

	if !strings.Contains(output, "Writing documents") {
		t.Errorf("Expected updated message in output, got: %s", output)
	}
}
