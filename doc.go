// Package ssconf provides validated, immutable value types for Shadowsocks
// connection configurations.
//
// Every configuration attribute is its own self-validating type: [Host],
// [Port] and [Method] can only be obtained through their Parse constructors
// and therefore never exist in an invalid state, while [Password], [Tag] and
// [Plugin] are free-form strings that accept any input. [Config] aggregates
// the fields and keeps the same guarantee: construction fails atomically on
// the first invalid field, and the With* methods return new aggregates after
// re-running the same validation.
//
//	cfg, err := ssconf.New("example.com", "8388", "aes-256-gcm")
//	if err != nil {
//	    // *ssconf.FieldError naming the offending field and value
//	}
//	cfg = cfg.WithPassword("secret").WithTag("home")
//
// Hostname normalization converts internationalized labels to their ASCII
// compatible (punycode) form:
//
//	h, _ := ssconf.ParseHost("mañana.com")
//	h.String()     // "xn--maana-pta.com"
//	h.IsHostname() // true
//
// The ssconf/uri subpackage converts configs to and from the two ss:// wire
// encodings (SIP002 and the legacy base64 form).
package ssconf
