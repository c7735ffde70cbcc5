package ssconf

//go:generate go tool errtrace -w .

import (
	"fmt"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/ssconf/internal/types"
)

// Params is an insertion-ordered multimap of query parameters that were not
// recognized as configuration fields.
type Params = types.Params

// Config is an immutable aggregate of validated connection fields.
// It can never be observed in an invalid state: construction fails instead,
// and every With* method re-runs the corresponding field validation,
// returning a new aggregate.
type Config struct {
	host   Host
	port   Port
	method Method
	passwd Password
	tag    Tag
	extra  *types.Params
}

// Fields is a plain record of raw field values used to construct a Config.
type Fields struct {
	Host     string
	Port     string
	Method   string
	Password string
	Tag      string
}

// New validates host, port and method, in that order, and returns the
// aggregate. The first failing field aborts construction with its
// [*FieldError]; password and tag default to empty.
func New(host, port, method string) (*Config, error) {
	h, err := ParseHost(host)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	p, err := ParsePort(port)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	m, err := ParseMethod(method)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &Config{host: h, port: p, method: m}, nil
}

// FromFields constructs a Config from a plain record, validating the
// required fields in order and coercing the optional ones.
func FromFields(f Fields) (*Config, error) {
	cfg, err := New(f.Host, f.Port, f.Method)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	cfg.passwd = NewPassword(f.Password)
	cfg.tag = NewTag(f.Tag)
	return cfg, nil
}

// Build assembles a Config from already validated fields.
// Host, port and method must be non-zero.
func Build(host Host, port Port, method Method) (*Config, error) {
	if host.IsZero() {
		return nil, errtrace.Wrap(newFieldErr("host", "", nil))
	}
	if port.IsZero() {
		return nil, errtrace.Wrap(newFieldErr("port", "", nil))
	}
	if method.IsZero() {
		return nil, errtrace.Wrap(newFieldErr("method", "", nil))
	}
	return &Config{host: host, port: port, method: method}, nil
}

func (c *Config) clone() *Config {
	c2 := *c
	c2.extra = c.extra.Clone()
	return &c2
}

// Host returns the normalized host payload.
func (c *Config) Host() string { return c.host.String() }

// HostField returns the typed host field.
func (c *Config) HostField() Host { return c.host }

// Port returns the canonical decimal port payload.
func (c *Config) Port() string { return c.port.String() }

// PortField returns the typed port field.
func (c *Config) PortField() Port { return c.port }

// Method returns the cipher identifier.
func (c *Config) Method() string { return c.method.String() }

// MethodField returns the typed method field.
func (c *Config) MethodField() Method { return c.method }

// Password returns the password payload, possibly empty.
func (c *Config) Password() string { return c.passwd.String() }

// Tag returns the tag payload, possibly empty.
func (c *Config) Tag() string { return c.tag.String() }

// TagField returns the typed tag field.
func (c *Config) TagField() Tag { return c.tag }

// Extra returns a copy of the extra query parameters attached during URI
// parsing. Directly constructed configs carry none.
func (c *Config) Extra() *Params { return c.extra.Clone() }

// WithHost returns a copy of the config with a revalidated host.
func (c *Config) WithHost(host string) (*Config, error) {
	h, err := ParseHost(host)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	c2 := c.clone()
	c2.host = h
	return c2, nil
}

// WithPort returns a copy of the config with a revalidated port.
func (c *Config) WithPort(port string) (*Config, error) {
	p, err := ParsePort(port)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	c2 := c.clone()
	c2.port = p
	return c2, nil
}

// WithMethod returns a copy of the config with a revalidated method.
func (c *Config) WithMethod(method string) (*Config, error) {
	m, err := ParseMethod(method)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	c2 := c.clone()
	c2.method = m
	return c2, nil
}

// WithPassword returns a copy of the config with the given password.
func (c *Config) WithPassword(passwd string) *Config {
	c2 := c.clone()
	c2.passwd = NewPassword(passwd)
	return c2
}

// WithTag returns a copy of the config with the given tag.
func (c *Config) WithTag(tag string) *Config {
	c2 := c.clone()
	c2.tag = NewTag(tag)
	return c2
}

// WithExtra returns a copy of the config with the key/value pair appended
// to the extra parameters. Used by URI parsers to capture unrecognized
// query parameters.
func (c *Config) WithExtra(key, value string) *Config {
	c2 := c.clone()
	if c2.extra == nil {
		c2.extra = &types.Params{}
	}
	c2.extra.Append(key, value)
	return c2
}

// String renders the config as method@host:port. The password is never
// included.
func (c *Config) String() string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%s@%s:%s", c.method, c.host, c.port)
}

// Format implements fmt.Formatter for custom formatting of the Config.
func (c *Config) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, c.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(c.String()))
		return
	default:
		type hideMethods Config
		type Config hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Config)(c))
		return
	}
}

// Equal compares this config with another for equality, field payloads and
// extra parameters included.
func (c *Config) Equal(val any) bool {
	var other *Config
	switch v := val.(type) {
	case Config:
		other = &v
	case *Config:
		other = v
	default:
		return false
	}

	if c == other {
		return true
	} else if c == nil || other == nil {
		return false
	}

	return c.host == other.host &&
		c.port == other.port &&
		c.method == other.method &&
		c.passwd == other.passwd &&
		c.tag == other.tag &&
		c.extra.Equal(other.extra)
}
