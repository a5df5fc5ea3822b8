package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeySlug       = "slug"
	KeyPath       = "path"
	KeyEvent      = "event"
	KeyRevision   = "revision"
	KeyCount      = "count"
	KeyQuery      = "query"
	KeyAddr       = "addr"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
	KeyMethod     = "method"
	KeyStatus     = "status"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Slug(s string) slog.Attr     { return slog.String(KeySlug, s) }
func Path(p string) slog.Attr     { return slog.String(KeyPath, p) }
func Event(e string) slog.Attr    { return slog.String(KeyEvent, e) }
func Revision(r uint64) slog.Attr { return slog.Uint64(KeyRevision, r) }
func Count(n int) slog.Attr       { return slog.Int(KeyCount, n) }
func Query(q string) slog.Attr    { return slog.String(KeyQuery, q) }
func Addr(a string) slog.Attr     { return slog.String(KeyAddr, a) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000.0)
}
func Method(m string) slog.Attr { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr { return slog.Int(KeyStatus, code) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
