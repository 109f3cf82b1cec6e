package interfaces

// Notifier is the global transient notification surface: success, warning
// and error messages shown to the user. Every component above the transport
// reports through it; none of the methods may block or fail.
//
// Implemented by adapters/notify.LogNotifier and composed via
// helpers.NotifierChain (the storefront shell prepends its console printer).
// Called from adapters/httpapi.Client, service.SessionStore,
// service.CartStore and service.Navigator.
type Notifier interface {
	// Success reports a completed operation (item added, login ok).
	Success(message string)

	// Warning reports a refused-but-recoverable condition (out of stock,
	// login required).
	Warning(message string)

	// Error reports a failed operation (request failed, login rejected).
	Error(message string)
}
