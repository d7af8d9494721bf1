package types

import "fmt"

// Outcome is the uniform result of executing a single rule. Success drives the
// fail-fast chain; Message is a human-readable account of what the rule did.
type Outcome struct {
	Success bool
	Message string
}

// Ok returns a successful outcome with the given message.
func Ok(message string) Outcome {
	return Outcome{Success: true, Message: message}
}

// Okf returns a successful outcome with a formatted message.
func Okf(format string, args ...any) Outcome {
	return Outcome{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Fail returns a failed outcome with the given message.
func Fail(message string) Outcome {
	return Outcome{Success: false, Message: message}
}

// Failf returns a failed outcome with a formatted message.
func Failf(format string, args ...any) Outcome {
	return Outcome{Success: false, Message: fmt.Sprintf(format, args...)}
}
