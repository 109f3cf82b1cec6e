package helpers

import (
	"strconv"

	"mystorefront/interfaces"
)

// NotifierChain fans every notification out to a list of Notifiers in order.
// Used to compose the diagnostic log notifier with the shell's console
// printer (and any future surfaces). Implements interfaces.Notifier.
type NotifierChain []interfaces.Notifier

// NewNotifierChain creates a chain from the given notifiers. Panics on nil
// slice or nil element (fail-fast at startup).
//
// Parameters: notifiers — ordered list of Notifier implementations; each one
// receives every message.
//
// Returns: NotifierChain ([]Notifier) implementing interfaces.Notifier.
//
// Called from cmd/storefront when building the app (console printer first,
// log notifier second).
func NewNotifierChain(notifiers ...interfaces.Notifier) NotifierChain {
	for i, n := range notifiers {
		if n == nil {
			panic("helpers.notifier_chain.go: notifier at index " + strconv.Itoa(i) + " is required")
		}
	}
	return NotifierChain(NilPanic(notifiers, "helpers.notifier_chain.go: notifiers is required"))
}

// Success forwards the message to every notifier in order.
func (c NotifierChain) Success(message string) {
	for _, n := range c {
		n.Success(message)
	}
}

// Warning forwards the message to every notifier in order.
func (c NotifierChain) Warning(message string) {
	for _, n := range c {
		n.Warning(message)
	}
}

// Error forwards the message to every notifier in order.
func (c NotifierChain) Error(message string) {
	for _, n := range c {
		n.Error(message)
	}
}
