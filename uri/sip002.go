package uri

//go:generate go tool errtrace -w .

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/ssconf"
	"github.com/ghettovoice/ssconf/internal/constraints"
	"github.com/ghettovoice/ssconf/internal/grammar"
	"github.com/ghettovoice/ssconf/internal/ioutil"
	"github.com/ghettovoice/ssconf/internal/util"
)

// SIP002 is the structured ss:// form: method and password travel base64
// encoded in the userinfo component, while host, port, query and fragment
// stay in the clear.
//
// The value is transient: it exists to render one Config (with an optional
// plugin) or as the result of one parse.
type SIP002 struct {
	Config *ssconf.Config
	// Plugin is the auxiliary transform chain, rendered as the "plugin"
	// query parameter when the config carries no "plugin" extra parameter.
	// A plugin recorded among the extras renders at its recorded position.
	Plugin ssconf.Plugin
}

// escapeUserinfo percent-escapes the base64 bytes that would terminate or
// split the authority component. The URL parser restores them on parse.
func escapeUserinfo(s string) string {
	return grammar.Escape(s, func(c byte) bool { return c == '/' || c == '+' })
}

// RenderTo writes the SIP002 URI to the provided writer.
func (u *SIP002) RenderTo(w io.Writer) (num int, err error) {
	if u == nil || u.Config == nil {
		return 0, nil
	}

	cfg := u.Config
	userinfo := base64.StdEncoding.EncodeToString([]byte(cfg.Method() + ":" + cfg.Password()))
	host := cfg.Host()
	if cfg.HostField().IsIPv6() {
		host = "[" + host + "]"
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(prefix, escapeUserinfo(userinfo), "@", host, ":", cfg.Port(), "/")
	cw.Call(u.renderQuery)
	cw.Fprint(encodeTagFragment(cfg.TagField()))
	return errtrace.Wrap2(cw.Result())
}

func (u *SIP002) renderQuery(w io.Writer) (num int, err error) {
	extra := u.Config.Extra()

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	var n int
	emit := func(k, v string) {
		sep := "&"
		if n == 0 {
			sep = "?"
		}
		cw.Fprint(sep, grammar.Escape(k, nil), "=", grammar.Escape(v, nil))
		n++
	}

	// A plugin captured as an extra keeps its recorded position among the
	// other parameters; the explicit field is rendered first only when the
	// config carries no plugin extra.
	if !u.Plugin.IsZero() && !extra.Has("plugin") {
		emit("plugin", u.Plugin.String())
	}
	for k, v := range extra.All() {
		emit(k, v)
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the SIP002 URI.
func (u *SIP002) Render() string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the SIP002 URI.
func (u *SIP002) String() string { return u.Render() }

// Format implements fmt.Formatter for custom formatting of the SIP002 URI.
func (u *SIP002) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods SIP002
		type SIP002 hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*SIP002)(u))
		return
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (u *SIP002) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *SIP002) UnmarshalText(text []byte) error {
	u1, err := ParseSIP002(text)
	if err != nil {
		*u = SIP002{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}

// ParseSIP002 parses a SIP002 URI from the given input src (string or []byte).
//
// The structure is read with the generic URL parser: host (brackets
// stripped), port and fragment come straight from it, the userinfo
// component is base64-decoded and split at the first ':' into method and
// password, and the query parameters are captured in wire order. The
// "plugin" parameter lands in the returned value's Plugin field and, like
// every other parameter, in the config's extra parameters.
//
// Field validation failures propagate as [*ssconf.FieldError]; structural
// failures are [*URIError].
func ParseSIP002[T constraints.Byteseq](src T) (*SIP002, error) {
	s := string(src)
	if err := checkScheme(s); err != nil {
		return nil, errtrace.Wrap(err)
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, errtrace.Wrap(newURIErr(s, err))
	}

	method, passwd, err := decodeUserinfo(s, u.User)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	cfg, err := ssconf.FromFields(ssconf.Fields{
		Host:     u.Hostname(),
		Port:     u.Port(),
		Method:   method,
		Password: passwd,
		Tag:      decodeTagFragment(u.EscapedFragment()).String(),
	})
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	var plugin ssconf.Plugin
	for k, v := range queryParams(u.RawQuery) {
		if k == "plugin" && v != "" && plugin.IsZero() {
			plugin = ssconf.NewPlugin(v)
		}
		cfg = cfg.WithExtra(k, v)
	}
	return &SIP002{Config: cfg, Plugin: plugin}, nil
}

// decodeUserinfo base64-decodes the userinfo component and splits it into
// method and password. The URL parser has already restored any
// percent-encoded '=' padding characters.
func decodeUserinfo(src string, user *url.Userinfo) (method, passwd string, err error) {
	var userinfo string
	if user != nil {
		userinfo = user.Username()
		if pw, ok := user.Password(); ok {
			userinfo += ":" + pw
		}
	}
	raw, err := decodeBase64(userinfo)
	if err != nil {
		return "", "", errtrace.Wrap(newURIErr(src, err))
	}
	method, passwd, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", "", errtrace.Wrap(newURIErr(src, errMissingPasswd))
	}
	return method, passwd, nil
}

// queryParams iterates the raw query in wire order, decoding keys and
// values. Malformed escapes are kept verbatim.
func queryParams(rawQuery string) func(yield func(string, string) bool) {
	return func(yield func(string, string) bool) {
		for _, kv := range strings.Split(rawQuery, "&") {
			if kv == "" {
				continue
			}
			k, v, _ := strings.Cut(kv, "=")
			if dk, err := url.QueryUnescape(k); err == nil {
				k = dk
			}
			if dv, err := url.QueryUnescape(v); err == nil {
				v = dv
			}
			if !yield(k, v) {
				return
			}
		}
	}
}
