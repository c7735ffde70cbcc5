package uri

//go:generate go tool errtrace -w .

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"braces.dev/errtrace"

	"github.com/ghettovoice/ssconf"
	"github.com/ghettovoice/ssconf/internal/constraints"
	"github.com/ghettovoice/ssconf/internal/errorutil"
	"github.com/ghettovoice/ssconf/internal/grammar"
	"github.com/ghettovoice/ssconf/internal/log"
	"github.com/ghettovoice/ssconf/internal/util"
)

// Scheme is the URI scheme shared by both wire formats.
const Scheme = "ss"

const prefix = Scheme + "://"

// ErrInvalidURI is the sentinel matched by every URI parsing error.
const ErrInvalidURI errorutil.Error = "invalid URI"

const (
	errMissingAt     errorutil.Error = "missing @"
	errMissingPasswd errorutil.Error = "missing password part"
	errMissingPort   errorutil.Error = "missing port part"
)

// URIError reports an input that failed to match a wire format.
// It wraps [ErrInvalidURI] and the underlying cause, if any.
type URIError struct {
	// Input is the offending URI string.
	Input string
	// Cause is the underlying failure: a bad base64 segment, a missing
	// separator, or a field validation error raised while parsing.
	Cause error
}

func newURIErr(input string, cause error) error {
	return &URIError{Input: input, Cause: cause} //errtrace:skip
}

func (e *URIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s %q", ErrInvalidURI, util.Ellipsis(e.Input, 128))
	}
	return fmt.Sprintf("%s %q: %v", ErrInvalidURI, util.Ellipsis(e.Input, 128), e.Cause)
}

func (e *URIError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidURI}
	}
	return []error{ErrInvalidURI, e.Cause}
}

// checkScheme validates the fixed ss:// prefix.
func checkScheme(s string) error {
	if !strings.HasPrefix(s, prefix) {
		return errtrace.Wrap(newURIErr(s, errorutil.Errorf("missing %q prefix", prefix)))
	}
	return nil
}

// encodeTagFragment renders the tag as a percent-encoded URI fragment,
// empty when the tag is absent.
func encodeTagFragment(tag ssconf.Tag) string {
	if tag.IsZero() {
		return ""
	}
	return "#" + grammar.Escape(tag.String(), nil)
}

// decodeTagFragment percent-decodes raw fragment text into a Tag.
func decodeTagFragment(fragment string) ssconf.Tag {
	return ssconf.NewTag(grammar.Unescape(fragment))
}

// decodeBase64 decodes a base64 segment, tolerating both the standard and
// the URL-safe alphabet, with or without padding.
func decodeBase64(s string) ([]byte, error) {
	trimmed := strings.TrimRight(s, "=")
	if b, err := base64.RawStdEncoding.DecodeString(trimmed); err == nil {
		return b, nil
	}
	return errtrace.Wrap2(base64.RawURLEncoding.DecodeString(trimmed))
}

// Codec is a single wire format usable by the dispatcher.
type Codec interface {
	// Name identifies the format in logs.
	Name() string
	// Parse decodes a complete URI string into a config.
	Parse(uri string) (*ssconf.Config, error)
}

// SIP002Codec adapts the SIP002 format to the [Codec] interface.
type SIP002Codec struct{}

func (SIP002Codec) Name() string { return "sip002" }

func (SIP002Codec) Parse(uri string) (*ssconf.Config, error) {
	u, err := ParseSIP002(uri)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return u.Config, nil
}

// Render serializes cfg in the SIP002 format.
func (SIP002Codec) Render(cfg *ssconf.Config) string {
	return (&SIP002{Config: cfg}).Render()
}

// LegacyCodec adapts the legacy base64 format to the [Codec] interface.
type LegacyCodec struct{}

func (LegacyCodec) Name() string { return "legacy-base64" }

func (LegacyCodec) Parse(uri string) (*ssconf.Config, error) {
	u, err := ParseLegacy(uri)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return u.Config, nil
}

// Render serializes cfg in the legacy base64 format.
func (LegacyCodec) Render(cfg *ssconf.Config) string {
	return (&Legacy{Config: cfg}).Render()
}

// codecs is the fixed dispatch order: SIP002 first, then legacy.
// The order is part of the format contract, do not reorder.
var codecs = []Codec{SIP002Codec{}, LegacyCodec{}}

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(log.Noop)
}

// SetLogger installs a logger for the parse dispatcher. Failed per-format
// attempts are reported at debug level. A nil logger disables logging.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = log.Noop
	}
	logger.Store(l)
}

// Parse decodes a URI in any of the supported wire formats.
//
// Formats are attempted in fixed order (SIP002, then legacy base64) and the
// first successful parse wins. When every format fails, only the first
// recorded failure surfaces: as-is when it already is a [*URIError],
// wrapped into one otherwise.
func Parse[T constraints.Byteseq](src T) (*ssconf.Config, error) {
	return errtrace.Wrap2(parseWith(codecs, string(src)))
}

func parseWith(cs []Codec, src string) (*ssconf.Config, error) {
	var first error
	for _, c := range cs {
		cfg, err := c.Parse(src)
		if err == nil {
			return cfg, nil
		}
		logger.Load().Debug("uri parse attempt failed",
			"codec", c.Name(),
			"input", util.Ellipsis(src, 128),
			"error", err,
		)
		if first == nil {
			first = err
		}
	}
	if errors.Is(first, ErrInvalidURI) {
		return nil, errtrace.Wrap(first)
	}
	return nil, errtrace.Wrap(newURIErr(src, first))
}
