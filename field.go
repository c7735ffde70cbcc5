package ssconf

//go:generate go tool errtrace -w .

import (
	"fmt"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/ssconf/internal/constraints"
	"github.com/ghettovoice/ssconf/internal/grammar"
)

// Host is a validated server address: an IPv4 literal, an IPv6 literal
// (bare colon form, no brackets) or a hostname. Hostnames with non-ASCII
// labels are stored in their ASCII compatible (punycode) form, while the
// classification keeps reflecting the input shape.
//
// The zero value is the absent host.
type Host struct {
	payload string
	kind    grammar.HostKind
}

// ParseHost validates src and returns the normalized host.
func ParseHost[T constraints.Byteseq](src T) (Host, error) {
	payload, kind, err := grammar.NormalizeHost(src)
	if err != nil {
		return Host{}, errtrace.Wrap(newFieldErr("host", string(src), err))
	}
	return Host{payload: payload, kind: kind}, nil
}

// String returns the normalized host payload.
func (h Host) String() string { return h.payload }

// IsIPv4 reports whether the input was an IPv4 literal.
func (h Host) IsIPv4() bool { return !h.IsZero() && h.kind == grammar.HostIPv4 }

// IsIPv6 reports whether the input was an IPv6 literal.
func (h Host) IsIPv6() bool { return !h.IsZero() && h.kind == grammar.HostIPv6 }

// IsHostname reports whether the input was a hostname.
func (h Host) IsHostname() bool { return !h.IsZero() && h.kind == grammar.HostName }

// IsZero reports whether the host is absent.
func (h Host) IsZero() bool { return h.payload == "" }

// Equal compares this host with another for equality.
func (h Host) Equal(val any) bool {
	switch v := val.(type) {
	case Host:
		return h == v
	case *Host:
		return v != nil && h == *v
	default:
		return false
	}
}

// Format implements fmt.Formatter for custom formatting of the host.
func (h Host) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, h.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(h.String()))
		return
	default:
		type hideMethods Host
		type Host hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Host(h))
		return
	}
}

// Port is a validated port number in [0, 65535], stored as its canonical
// decimal string. The zero value is the absent port.
type Port struct {
	payload string
}

// ParsePort validates src as a decimal port number and returns the
// normalized port with leading zeros stripped.
func ParsePort[T constraints.Byteseq](src T) (Port, error) {
	payload, err := grammar.NormalizePort(src)
	if err != nil {
		return Port{}, errtrace.Wrap(newFieldErr("port", string(src), err))
	}
	return Port{payload: payload}, nil
}

// PortFromInt converts an integer port number, rejecting values outside
// [0, 65535].
func PortFromInt(n int) (Port, error) {
	if n < 0 || n > 65535 {
		return Port{}, errtrace.Wrap(newFieldErr("port", strconv.Itoa(n), nil))
	}
	return Port{payload: strconv.Itoa(n)}, nil
}

// String returns the canonical decimal payload.
func (p Port) String() string { return p.payload }

// Uint16 returns the numeric port value.
func (p Port) Uint16() uint16 {
	n, _ := strconv.ParseUint(p.payload, 10, 16)
	return uint16(n)
}

// IsZero reports whether the port is absent.
func (p Port) IsZero() bool { return p.payload == "" }

// Equal compares this port with another for equality.
func (p Port) Equal(val any) bool {
	switch v := val.(type) {
	case Port:
		return p == v
	case *Port:
		return v != nil && p == *v
	default:
		return false
	}
}

// Method is a cipher identifier from the fixed whitelist.
// The zero value is the absent method.
type Method struct {
	payload string
}

// methods is the exact, case-sensitive cipher whitelist.
var methods = []string{
	"rc4-md5",
	"aes-128-gcm",
	"aes-192-gcm",
	"aes-256-gcm",
	"aes-128-cfb",
	"aes-192-cfb",
	"aes-256-cfb",
	"aes-128-ctr",
	"aes-192-ctr",
	"aes-256-ctr",
	"camellia-128-cfb",
	"camellia-192-cfb",
	"camellia-256-cfb",
	"bf-cfb",
	"chacha20-ietf-poly1305",
	"salsa20",
	"chacha20",
	"chacha20-ietf",
}

var methodSet = func() map[string]bool {
	ms := make(map[string]bool, len(methods))
	for _, m := range methods {
		ms[m] = true
	}
	return ms
}()

// Methods returns the supported cipher identifiers.
func Methods() []string {
	ms := make([]string, len(methods))
	copy(ms, methods)
	return ms
}

// ParseMethod validates src against the cipher whitelist.
// The match is exact: no case folding, no aliases.
func ParseMethod[T constraints.Byteseq](src T) (Method, error) {
	s := string(src)
	if !methodSet[s] {
		return Method{}, errtrace.Wrap(newFieldErr("method", s, nil))
	}
	return Method{payload: s}, nil
}

// String returns the cipher identifier.
func (m Method) String() string { return m.payload }

// IsZero reports whether the method is absent.
func (m Method) IsZero() bool { return m.payload == "" }

// Equal compares this method with another for equality.
func (m Method) Equal(val any) bool {
	switch v := val.(type) {
	case Method:
		return m == v
	case *Method:
		return v != nil && m == *v
	default:
		return false
	}
}

// Password is a free-form secret. Any string is accepted, absent input is
// the empty string.
type Password string

// NewPassword coerces raw into a Password.
func NewPassword(raw string) Password { return Password(raw) }

func (p Password) String() string { return string(p) }

// IsZero reports whether the password is empty.
func (p Password) IsZero() bool { return p == "" }

// Tag is a free-form display label carried in the URI fragment.
type Tag string

// NewTag coerces raw into a Tag.
func NewTag(raw string) Tag { return Tag(raw) }

func (t Tag) String() string { return string(t) }

// IsZero reports whether the tag is empty.
func (t Tag) IsZero() bool { return t == "" }

// Plugin names an auxiliary transform chain, carried as a query parameter
// in the SIP002 format only.
type Plugin string

// NewPlugin coerces raw into a Plugin.
func NewPlugin(raw string) Plugin { return Plugin(raw) }

func (p Plugin) String() string { return string(p) }

// IsZero reports whether the plugin is empty.
func (p Plugin) IsZero() bool { return p == "" }
