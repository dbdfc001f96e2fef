// Package status provides the uniform success/failure value returned by
// certsync operations. A Status carries a boolean outcome plus free-form
// diagnostic attributes; host identity and build version are stamped on
// every value so log lines and reports are self-describing.
package status

import (
	"fmt"
	"net"
	"os"
	"sort"
	"strings"

	"github.com/example/certsync/internal/version"
)

// Host identity resolved once at startup. Lookup failures fall back to
// loopback values rather than erroring.
var (
	hostname     = "localhost"
	resolvedName = "127.0.0.1"
)

func init() {
	h, err := os.Hostname()
	if err != nil {
		return
	}
	hostname = h
	if addrs, err := net.LookupHost(h); err == nil && len(addrs) > 0 {
		resolvedName = addrs[0]
	}
}

// Status is an immutable outcome value. Construct one with OK, FromError, or
// New; never mutate the attribute map after construction.
type Status struct {
	ok    bool
	attrs map[string]string
}

// New builds a Status with the given outcome and attributes. The hostname,
// resolvedname, and version attributes are always injected, overriding any
// caller-supplied values for those keys.
func New(ok bool, attrs map[string]string) Status {
	merged := make(map[string]string, len(attrs)+3)
	for k, v := range attrs {
		merged[k] = v
	}
	merged["hostname"] = hostname
	merged["resolvedname"] = resolvedName
	merged["version"] = version.Get().Version
	return Status{ok: ok, attrs: merged}
}

// OK builds a successful Status.
func OK(attrs map[string]string) Status {
	return New(true, attrs)
}

// FromError builds a failed Status carrying the error text in the "error"
// attribute.
func FromError(err error, attrs map[string]string) Status {
	merged := make(map[string]string, len(attrs)+1)
	for k, v := range attrs {
		merged[k] = v
	}
	if err != nil {
		merged["error"] = err.Error()
	}
	return New(false, merged)
}

// Ok reports whether the operation succeeded.
func (s Status) Ok() bool {
	return s.ok
}

// Get returns the attribute for key. A missing key yields ("", false), never
// a panic.
func (s Status) Get(key string) (string, bool) {
	v, ok := s.attrs[key]
	return v, ok
}

// Contains reports whether the attribute key is present.
func (s Status) Contains(key string) bool {
	_, ok := s.attrs[key]
	return ok
}

// AsMap returns a copy of the attributes plus the "ok" outcome, suitable for
// serialization.
func (s Status) AsMap() map[string]any {
	m := make(map[string]any, len(s.attrs)+1)
	m["ok"] = s.ok
	for k, v := range s.attrs {
		m[k] = v
	}
	return m
}

// String renders the status with attributes in sorted key order, so repeated
// renderings of the same value are byte-identical.
func (s Status) String() string {
	keys := make([]string, 0, len(s.attrs))
	for k := range s.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("<Status ")
	if s.ok {
		b.WriteString("OK")
	} else {
		b.WriteString("BAD")
	}
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, s.attrs[k])
	}
	b.WriteString(">")
	return b.String()
}
