package cmd

import (
	"fmt"
	"os"

	"github.com/fulmenhq/gofulmen/errors"

	"github.com/swaplens/swaplens/internal/observability"
)

// ExitWithError prints a fatal error to stderr and exits non-zero. Error
// envelopes keep their code and correlation ID in the output.
func ExitWithError(msg string, err error) {
	observability.Sync()

	if err == nil {
		fmt.Fprintf(os.Stderr, "FATAL: %s\n", msg)
		os.Exit(1)
	}

	if envelope, ok := err.(*errors.ErrorEnvelope); ok {
		fmt.Fprintf(os.Stderr, "FATAL: %s [%s]: %s (correlation: %s)\n",
			msg, envelope.Code, envelope.Message, envelope.CorrelationID)
		if envelope.Original != nil {
			if originalErr, ok := envelope.Original.(error); ok {
				fmt.Fprintf(os.Stderr, "Underlying error: %v\n", originalErr)
			}
		}
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "FATAL: %s: %v\n", msg, err)
	os.Exit(1)
}
