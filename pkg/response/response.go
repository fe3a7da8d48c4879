package response

import (
	"errors"
	"fmt"
	"io"

	"ledger-console/pkg/apperror"
)

const unexpectedErrorMessage = "Error: unexpected error, please try again"

// OK writes one plain-text result line.
func OK(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// Error writes one error line. An *apperror.AppError is rendered with its
// user-facing message; any other error gets a generic line so internals
// never leak to the terminal.
func Error(w io.Writer, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Kind != apperror.KindInternal {
		fmt.Fprintf(w, "Error: %s\n", appErr.Message)
		return
	}

	fmt.Fprintln(w, unexpectedErrorMessage)
}
