package errs

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/withstack"
)

// PublicError carries a message that is safe to return to API clients.
type PublicError struct {
	err     error
	message string
}

func (p *PublicError) Error() string {
	return p.err.Error()
}

func (p *PublicError) Message() string {
	return p.message
}

func (p *PublicError) Unwrap() error {
	return p.err
}

func NewPublicError(message string) error {
	return withstack.WithStackDepth(&PublicError{err: errors.New(message), message: message}, 1)
}

// WithPublicMessage makes err public, prefixing its message. A nil err returns nil.
func WithPublicMessage(err error, prefix string) error {
	if err == nil {
		return nil
	}
	message := err.Error()
	if prefix != "" {
		message = prefix + ": " + message
	}
	return withstack.WithStackDepth(&PublicError{err: err, message: message}, 1)
}
