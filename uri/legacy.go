package uri

//go:generate go tool errtrace -w .

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/ssconf"
	"github.com/ghettovoice/ssconf/internal/constraints"
	"github.com/ghettovoice/ssconf/internal/ioutil"
	"github.com/ghettovoice/ssconf/internal/util"
)

// Legacy is the older ss:// form: the whole method:password@host:port tuple
// travels as one base64 segment, followed only by the optional tag
// fragment. IPv6 hosts are written unbracketed inside the segment.
//
// The value is transient: it exists to render one Config or as the result
// of one parse.
type Legacy struct {
	Config *ssconf.Config
}

// RenderTo writes the legacy URI to the provided writer.
// The base64 segment carries no padding characters.
func (u *Legacy) RenderTo(w io.Writer) (num int, err error) {
	if u == nil || u.Config == nil {
		return 0, nil
	}

	cfg := u.Config
	tuple := cfg.Method() + ":" + cfg.Password() + "@" + cfg.Host() + ":" + cfg.Port()

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(prefix, base64.RawStdEncoding.EncodeToString([]byte(tuple)))
	cw.Fprint(encodeTagFragment(cfg.TagField()))
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the legacy URI.
func (u *Legacy) Render() string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the legacy URI.
func (u *Legacy) String() string { return u.Render() }

// Format implements fmt.Formatter for custom formatting of the legacy URI.
func (u *Legacy) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods Legacy
		type Legacy hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Legacy)(u))
		return
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (u *Legacy) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *Legacy) UnmarshalText(text []byte) error {
	u1, err := ParseLegacy(text)
	if err != nil {
		*u = Legacy{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}

// ParseLegacy parses a legacy base64 URI from the given input src (string
// or []byte).
//
// The text after the scheme prefix is split at the first '#' into the
// base64 segment and the percent-encoded tag. Inside the decoded segment,
// the first '@' separates credentials from the address, and the first ':'
// on either side separates method from password and host from port.
//
// Field validation failures propagate as [*ssconf.FieldError]; structural
// failures are [*URIError].
func ParseLegacy[T constraints.Byteseq](src T) (*Legacy, error) {
	s := string(src)
	if err := checkScheme(s); err != nil {
		return nil, errtrace.Wrap(err)
	}

	segment, fragment, _ := strings.Cut(s[len(prefix):], "#")
	tag := decodeTagFragment(fragment)

	raw, err := decodeBase64(segment)
	if err != nil {
		return nil, errtrace.Wrap(newURIErr(s, err))
	}

	creds, addr, ok := strings.Cut(string(raw), "@")
	if !ok {
		return nil, errtrace.Wrap(newURIErr(s, errMissingAt))
	}
	methodPart, passwdPart, ok := strings.Cut(creds, ":")
	if !ok {
		return nil, errtrace.Wrap(newURIErr(s, errMissingPasswd))
	}
	// Split at the last ':' so that unbracketed IPv6 hosts keep their port.
	colon := strings.LastIndex(addr, ":")
	if colon < 0 {
		return nil, errtrace.Wrap(newURIErr(s, errMissingPort))
	}
	hostPart, portPart := addr[:colon], addr[colon+1:]

	method, err := ssconf.ParseMethod(methodPart)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	host, err := ssconf.ParseHost(hostPart)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	port, err := ssconf.ParsePort(portPart)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	cfg, err := ssconf.Build(host, port, method)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &Legacy{Config: cfg.WithPassword(passwdPart).WithTag(tag.String())}, nil
}
