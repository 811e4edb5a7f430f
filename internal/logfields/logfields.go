package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyMarker     = "marker"
	KeyWorkspace  = "workspace"
	KeyOutputBase = "output_base"
	KeyJobID      = "job_id"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Marker(m string) slog.Attr        { return slog.String(KeyMarker, m) }
func Workspace(w string) slog.Attr     { return slog.String(KeyWorkspace, w) }
func OutputBase(b string) slog.Attr    { return slog.String(KeyOutputBase, b) }
func JobID(id string) slog.Attr        { return slog.String(KeyJobID, id) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
