package png

import "github.com/pkg/errors"

// A FormatError reports that the input is not a valid PNG, or that a
// structural rule of the chunk stream (ordering, CRC, IDAT framing) was
// violated fatally.
type FormatError string

func (e FormatError) Error() string { return "png: invalid format: " + string(e) }

// An UnsupportedError reports that the input uses a valid but unimplemented
// PNG feature.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "png: unsupported feature: " + string(e) }

// Severity distinguishes a Warning (decode continues) from an Info note
// (unknown ancillary chunk; neither error nor warning), per spec §7.
type Severity int

const (
	// SeverityInfo marks a note about an unknown ancillary chunk.
	SeverityInfo Severity = iota
	// SeverityWarning marks a recoverable problem; decode continues unless
	// StrictMode is set, in which case it is promoted to an error.
	SeverityWarning
)

// A Warning is a recoverable problem detected at a specific byte offset.
type Warning struct {
	Offset  int64
	Message string
}

func (w Warning) Error() string { return w.Message }

func newWarning(offset int64, format string, args ...interface{}) Warning {
	return Warning{Offset: offset, Message: errors.Errorf(format, args...).Error()}
}

// strictPromote turns w into a fatal FormatError when ctx is in strict mode;
// otherwise it is appended to ctx.Warnings and nil is returned.
func (ctx *decodeContext) strictPromote(w Warning) error {
	if ctx.opts.StrictMode {
		return errors.WithStack(FormatError(w.Message))
	}
	ctx.Warnings = append(ctx.Warnings, w)
	return nil
}

func (ctx *decodeContext) warnf(offset int64, format string, args ...interface{}) error {
	return ctx.strictPromote(newWarning(offset, format, args...))
}

func (ctx *decodeContext) infof(format string, args ...interface{}) {
	ctx.Info = append(ctx.Info, errors.Errorf(format, args...).Error())
}
