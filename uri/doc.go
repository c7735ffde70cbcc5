// Package uri converts Shadowsocks connection configurations to and from
// the two ss:// wire encodings.
//
// # Formats
//
// Two independently evolved encodings share the ss:// scheme:
//
//   - [SIP002]: the structured form. Method and password travel base64
//     encoded in the userinfo component; host, port, plugin and arbitrary
//     query parameters, and the tag fragment stay in the clear:
//
//     ss://YWVzLTEyOC1nY206dGVzdA==@192.168.100.1:8888/?plugin=obfs-local%3Bobfs%3Dhttp#Foo%20Bar
//
//   - [Legacy]: the older form. The whole method:password@host:port tuple
//     is one base64 segment (padding stripped, IPv6 hosts unbracketed),
//     followed only by the optional tag fragment:
//
//     ss://YmYtY2ZiOnRlc3RAMTkyLjE2OC4xMDAuMTo4ODg4#Foo%20Bar
//
// Both are transient render values: build one from a [ssconf.Config] to
// produce a string, or receive one from a parse.
//
//	u := &uri.SIP002{Config: cfg, Plugin: "obfs-local;obfs=http"}
//	s := u.Render()
//
// # Parsing
//
// [ParseSIP002] and [ParseLegacy] decode a known format. [Parse] dispatches
// across both in fixed order (SIP002 first, then legacy) and returns the
// config from the first format that accepts the input; when every format
// fails, the first recorded failure surfaces as a [*URIError].
//
//	cfg, err := uri.Parse("ss://YmYtY2ZiOnRlc3RAMTkyLjE2OC4xMDAuMTo4ODg4#Foo%20Bar")
//
// Errors are matched with the errors package: [ErrInvalidURI] tags every
// structural failure, while field validation failures raised during a parse
// keep their [ssconf.ErrInvalidField] tag.
//
// # Thread safety
//
// All operations are pure functions over their inputs; the only mutable
// package state is the dispatcher logger installed with [SetLogger].
package uri
