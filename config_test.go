package ssconf_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/ssconf"
)

func TestNew(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name               string
		host, port, method string
		wantErr            error
		wantField          string
	}{
		{"ipv4", "192.168.100.1", "8888", "aes-128-gcm", nil, ""},
		{"ipv6", "2001:db8::1", "443", "chacha20-ietf-poly1305", nil, ""},
		{"hostname", "Example.COM", "0", "rc4-md5", nil, ""},

		{"bad host", "-pwned", "8888", "aes-128-gcm", ssconf.ErrInvalidField, "host"},
		{"bad port", "example.com", "foo", "aes-128-gcm", ssconf.ErrInvalidField, "port"},
		{"bad method", "example.com", "8888", "aes-999-gcm", ssconf.ErrInvalidField, "method"},
		// the first failing field wins
		{"bad host and port", "", "foo", "aes-128-gcm", ssconf.ErrInvalidField, "host"},
		{"bad port and method", "example.com", "-1", "nope", ssconf.ErrInvalidField, "port"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			cfg, gotErr := ssconf.New(c.host, c.port, c.method)
			if c.wantErr != nil {
				if diff := cmp.Diff(gotErr, c.wantErr, cmpopts.EquateErrors()); diff != "" {
					t.Fatalf("New() error = %v, want %v\ndiff (-got +want):\n%v", gotErr, c.wantErr, diff)
				}
				var ferr *ssconf.FieldError
				if !errors.As(gotErr, &ferr) || ferr.Field != c.wantField {
					t.Fatalf("New() error = %v, want *FieldError on %q", gotErr, c.wantField)
				}
				return
			}
			if gotErr != nil {
				t.Fatalf("New() error = %v, want nil", gotErr)
			}
			if cfg.Method() != c.method {
				t.Errorf("Method() = %q, want %q", cfg.Method(), c.method)
			}
			if cfg.Password() != "" || cfg.Tag() != "" {
				t.Errorf("Password()/Tag() = %q/%q, want empty", cfg.Password(), cfg.Tag())
			}
			if cfg.Extra().Len() != 0 {
				t.Errorf("Extra().Len() = %d, want 0", cfg.Extra().Len())
			}
		})
	}
}

func TestFromFields(t *testing.T) {
	t.Parallel()

	cfg, err := ssconf.FromFields(ssconf.Fields{
		Host:     "192.168.100.1",
		Port:     "8888",
		Method:   "bf-cfb",
		Password: "test",
		Tag:      "Foo Bar",
	})
	if err != nil {
		t.Fatalf("FromFields() error = %v, want nil", err)
	}
	if got, want := cfg.String(), "bf-cfb@192.168.100.1:8888"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if cfg.Password() != "test" {
		t.Errorf("Password() = %q, want %q", cfg.Password(), "test")
	}
	if cfg.Tag() != "Foo Bar" {
		t.Errorf("Tag() = %q, want %q", cfg.Tag(), "Foo Bar")
	}

	_, err = ssconf.FromFields(ssconf.Fields{Host: "h_ost", Port: "1", Method: "bf-cfb"})
	if !errors.Is(err, ssconf.ErrInvalidField) {
		t.Errorf("FromFields() error = %v, want %v", err, ssconf.ErrInvalidField)
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	host, _ := ssconf.ParseHost("example.com")
	port, _ := ssconf.ParsePort("443")
	method, _ := ssconf.ParseMethod("aes-256-gcm")

	cfg, err := ssconf.Build(host, port, method)
	if err != nil {
		t.Fatalf("Build() error = %v, want nil", err)
	}
	if got, want := cfg.String(), "aes-256-gcm@example.com:443"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if _, err := ssconf.Build(ssconf.Host{}, port, method); !errors.Is(err, ssconf.ErrInvalidField) {
		t.Errorf("Build() with zero host error = %v, want %v", err, ssconf.ErrInvalidField)
	}
	if _, err := ssconf.Build(host, port, ssconf.Method{}); !errors.Is(err, ssconf.ErrInvalidField) {
		t.Errorf("Build() with zero method error = %v, want %v", err, ssconf.ErrInvalidField)
	}
}

func TestConfigWith(t *testing.T) {
	t.Parallel()

	cfg, err := ssconf.New("example.com", "443", "aes-128-gcm")
	if err != nil {
		t.Fatal(err)
	}

	cfg2, err := cfg.WithHost("mañana.com")
	if err != nil {
		t.Fatalf("WithHost() error = %v, want nil", err)
	}
	if cfg2.Host() != "xn--maana-pta.com" {
		t.Errorf("WithHost() host = %q, want %q", cfg2.Host(), "xn--maana-pta.com")
	}
	if cfg.Host() != "example.com" {
		t.Errorf("receiver host = %q, original must stay untouched", cfg.Host())
	}

	if _, err := cfg.WithHost("-pwned"); !errors.Is(err, ssconf.ErrInvalidField) {
		t.Errorf("WithHost(-pwned) error = %v, want %v", err, ssconf.ErrInvalidField)
	}
	if _, err := cfg.WithPort("65536"); !errors.Is(err, ssconf.ErrInvalidField) {
		t.Errorf("WithPort(65536) error = %v, want %v", err, ssconf.ErrInvalidField)
	}
	if _, err := cfg.WithMethod("foo"); !errors.Is(err, ssconf.ErrInvalidField) {
		t.Errorf("WithMethod(foo) error = %v, want %v", err, ssconf.ErrInvalidField)
	}

	cfg3, err := cfg.WithPort("01234")
	if err != nil {
		t.Fatalf("WithPort() error = %v, want nil", err)
	}
	if cfg3.Port() != "1234" {
		t.Errorf("WithPort(01234) port = %q, want %q", cfg3.Port(), "1234")
	}

	cfg4 := cfg.WithPassword("secret").WithTag("home")
	if cfg4.Password() != "secret" || cfg4.Tag() != "home" {
		t.Errorf("WithPassword/WithTag = %q/%q, want secret/home", cfg4.Password(), cfg4.Tag())
	}
	if cfg.Password() != "" || cfg.Tag() != "" {
		t.Errorf("receiver password/tag = %q/%q, original must stay untouched", cfg.Password(), cfg.Tag())
	}
}

func TestConfigExtra(t *testing.T) {
	t.Parallel()

	cfg, err := ssconf.New("example.com", "443", "aes-128-gcm")
	if err != nil {
		t.Fatal(err)
	}

	cfg2 := cfg.WithExtra("plugin", "obfs-local;obfs=http").WithExtra("group", "work")
	if got := cfg2.Extra().Len(); got != 2 {
		t.Fatalf("Extra().Len() = %d, want 2", got)
	}
	if v, ok := cfg2.Extra().Last("plugin"); !ok || v != "obfs-local;obfs=http" {
		t.Errorf("Extra().Last(plugin) = %q/%v, want obfs-local;obfs=http/true", v, ok)
	}
	if got, want := cfg2.Extra().Keys(), []string{"plugin", "group"}; !cmp.Equal(got, want) {
		t.Errorf("Extra().Keys() = %v, want %v", got, want)
	}
	if cfg.Extra().Len() != 0 {
		t.Errorf("receiver extras = %d, original must stay untouched", cfg.Extra().Len())
	}

	// Extra returns a copy, mutating it leaves the config alone.
	ex := cfg2.Extra()
	ex.Append("x", "y")
	if cfg2.Extra().Len() != 2 {
		t.Errorf("Extra() leaked internal state")
	}
}

func TestConfigEqual(t *testing.T) {
	t.Parallel()

	base := func() *ssconf.Config {
		cfg, err := ssconf.New("example.com", "443", "aes-128-gcm")
		if err != nil {
			t.Fatal(err)
		}
		return cfg.WithPassword("pw").WithTag("tag").WithExtra("k", "v")
	}

	a, b := base(), base()
	if !a.Equal(b) {
		t.Errorf("Equal() = false for identical configs")
	}
	if !a.Equal(*b) {
		t.Errorf("Equal() = false for value argument")
	}
	if a.Equal(b.WithPassword("other")) {
		t.Errorf("Equal() = true for differing passwords")
	}
	if a.Equal(b.WithExtra("k", "v2")) {
		t.Errorf("Equal() = true for differing extras")
	}
	if a.Equal("not a config") {
		t.Errorf("Equal() = true for foreign type")
	}
}

func TestConfigFormat(t *testing.T) {
	t.Parallel()

	cfg, err := ssconf.New("192.168.100.1", "8888", "bf-cfb")
	if err != nil {
		t.Fatal(err)
	}
	cfg = cfg.WithPassword("test")

	if got, want := fmt.Sprintf("%s", cfg), "bf-cfb@192.168.100.1:8888"; got != want {
		t.Errorf("%%s = %q, want %q", got, want)
	}
	if got, want := fmt.Sprintf("%q", cfg), `"bf-cfb@192.168.100.1:8888"`; got != want {
		t.Errorf("%%q = %q, want %q", got, want)
	}
}
