package grammar

//go:generate go tool errtrace -w .

import (
	"net"
	"net/url"
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/net/idna"

	"github.com/ghettovoice/ssconf/internal/constraints"
	"github.com/ghettovoice/ssconf/internal/util"
)

// HostKind classifies a validated host payload by the shape of the input
// it was parsed from.
type HostKind uint8

const (
	HostName HostKind = iota
	HostIPv4
	HostIPv6
)

func (k HostKind) String() string {
	switch k {
	case HostIPv4:
		return "ipv4"
	case HostIPv6:
		return "ipv6"
	default:
		return "hostname"
	}
}

// NormalizeHost validates src as a URI host and returns the normalized
// payload together with its classification.
//
// The candidate is embedded into a synthetic ss:// authority and run through
// the generic URL parser, so the accepted syntax is exactly the RFC 3986
// host rule. IPv6 literals are expected in the bare colon form, without
// brackets. Hostname labels carrying non-ASCII runes are converted to their
// ASCII compatible (punycode) form; the classification always reflects the
// input shape, not the converted output.
func NormalizeHost[T constraints.Byteseq](src T) (string, HostKind, error) {
	s := util.LCase(string(src))
	if s == "" {
		return "", HostName, errtrace.Wrap(ErrEmptyInput)
	}

	if strings.Contains(s, ":") {
		if net.ParseIP(s) == nil {
			return "", HostName, errtrace.Wrap(newMalformedInputErr("invalid IPv6 literal %q", s))
		}
		return s, HostIPv6, nil
	}

	hostname, err := parseAuthorityHost(s)
	if err != nil {
		return "", HostName, errtrace.Wrap(err)
	}

	if ip := net.ParseIP(hostname); ip != nil && ip.To4() != nil {
		return hostname, HostIPv4, nil
	}

	hostname, err = toASCII(hostname)
	if err != nil {
		return "", HostName, errtrace.Wrap(newMalformedInputErr(err))
	}
	if !isHostname(hostname) {
		return "", HostName, errtrace.Wrap(newMalformedInputErr("invalid hostname %q", s))
	}
	return hostname, HostName, nil
}

// parseAuthorityHost reuses the URL grammar by wrapping the candidate into
// a placeholder authority. The parser rejects gross violations (spaces,
// control chars, separators); the finer host rules are checked afterwards.
func parseAuthorityHost(s string) (string, error) {
	u, err := url.Parse("ss://" + s + "/")
	if err != nil {
		return "", errtrace.Wrap(newMalformedInputErr(err))
	}
	hostname := u.Hostname()
	if hostname == "" || u.Port() != "" || u.User != nil ||
		u.Path != "/" || u.RawQuery != "" || u.Fragment != "" {
		return "", errtrace.Wrap(newMalformedInputErr("invalid host %q", s))
	}
	return hostname, nil
}

// toASCII applies punycode conversion to labels containing non-ASCII runes.
// The conversion-only profile is used on purpose: syntax is enforced by
// isHostname on the converted form.
func toASCII(s string) (string, error) {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return errtrace.Wrap2(idna.Punycode.ToASCII(s))
		}
	}
	return s, nil
}

func isHostname(s string) bool {
	for _, label := range strings.Split(s, ".") {
		if label == "" || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			if !IsAlphanumChar(label[i]) && label[i] != '-' {
				return false
			}
		}
	}
	return true
}
