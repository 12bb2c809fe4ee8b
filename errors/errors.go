package errors

import (
	goerrors "errors"

	"github.com/pipe01/hyper/internal/lexer"
)

// SituatedErr is an error that points at a position in a source file.
type SituatedErr interface {
	error
	Unwrap() error
	At() lexer.Location
}

// Situate returns the innermost situated error in err's chain, which carries
// the most precise location.
func Situate(err error) (SituatedErr, bool) {
	var found SituatedErr

	for err != nil {
		var serr SituatedErr
		if !goerrors.As(err, &serr) {
			break
		}

		found = serr
		err = serr.Unwrap()
	}

	return found, found != nil
}
