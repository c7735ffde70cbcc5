package grammar

//go:generate go tool errtrace -w .

import (
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/ssconf/internal/constraints"
)

// NormalizePort validates src as a decimal port number in [0, 65535] and
// returns the canonical decimal payload, with leading zeros stripped.
// Signs, fractions and non-digit input are rejected, matching the URL
// grammar port rule.
func NormalizePort[T constraints.Byteseq](src T) (string, error) {
	s := string(src)
	if s == "" {
		return "", errtrace.Wrap(ErrEmptyInput)
	}
	for i := 0; i < len(s); i++ {
		if !IsDigitChar(s[i]) {
			return "", errtrace.Wrap(newMalformedInputErr("invalid port %q", s))
		}
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return "", errtrace.Wrap(newMalformedInputErr("port %q out of range", s))
	}
	return strconv.FormatUint(n, 10), nil
}
