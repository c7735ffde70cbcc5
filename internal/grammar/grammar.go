// Package grammar implements validation and normalization rules for the
// textual components of ss:// connection URIs.
package grammar

//go:generate go tool errtrace -w .

import (
	"github.com/ghettovoice/ssconf/internal/errorutil"
)

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}
