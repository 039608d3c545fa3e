package output

import "errors"

// ErrUnsupportedFormat is returned for a format name with no registered formatter.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ErrEmptyReport is returned when a formatter has no section it can render.
var ErrEmptyReport = errors.New("report has no section to render")
