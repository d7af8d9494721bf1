// Package notification delivers trade notifications. Delivery is
// fire-and-forget: failures are logged, never propagated into the rule chain.
package notification

// Notifier sends a titled message to the operator.
type Notifier interface {
	Send(title, body string)
}
