package errors

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/netbirdio/netstatus/client/internal/connstatus"
)

// ListenerError records the failure of a single listener during a dispatch
type ListenerError struct {
	// Index is the listener position in the dispatch snapshot
	Index  int
	Status connstatus.ConnectStatus
	Err    error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %d on %s: %v", e.Index, e.Status, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}

func formatError(es []error) string {
	if len(es) == 1 {
		return fmt.Sprintf("1 error occurred:\n\t* %s", es[0])
	}

	points := make([]string, len(es))
	for i, err := range es {
		points[i] = fmt.Sprintf("* %s", err)
	}

	return fmt.Sprintf(
		"%d errors occurred:\n\t%s",
		len(es), strings.Join(points, "\n\t"))
}

// FormatErrorOrNil returns nil for an empty multierror, otherwise the error with a compact format
func FormatErrorOrNil(err *multierror.Error) error {
	if err != nil {
		err.ErrorFormat = formatError
	}
	return err.ErrorOrNil()
}
