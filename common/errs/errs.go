package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// InvalidArgument is returned when a caller supplied an unusable argument.
	InvalidArgument = ErrorKind("Invalid Argument")

	// InternalError is returned for failures that are not the caller's fault.
	InternalError = ErrorKind("Internal Error")

	// Unsupported is returned for networks, modules or features that are not supported.
	Unsupported = ErrorKind("Unsupported")

	// Timeout is returned when an operation gave up waiting.
	Timeout = ErrorKind("Timeout")

	// WaitFailed marks a failed wait for a transaction confirmation (node error, dropped transaction).
	WaitFailed = ErrorKind("Confirmation Wait Failed")

	// Reverted is returned when a mined transaction or a call was reverted by the contract.
	Reverted = ErrorKind("Execution Reverted")

	// MalformedAmount is returned when a raw on-chain amount cannot be parsed.
	MalformedAmount = ErrorKind("Malformed Amount")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
