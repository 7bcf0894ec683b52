// Package xlpkg loads spreadsheet packages (.xlsx, .xlsm, .xltx, .xltm):
// it walks the archive's manifest and relationship graph and reads the
// workbook, its shared strings, styles, sheets and the parts they link to.
package xlpkg

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/drawing"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/models"
)

// Environment variables read by OptionsFromEnvironment.
const (
	EnvReadOnly         = "XLPKG_READ_ONLY"
	EnvKeepLinks        = "XLPKG_KEEP_LINKS"
	EnvKeepVBA          = "XLPKG_KEEP_VBA"
	EnvUnsupportedMedia = "XLPKG_UNSUPPORTED_MEDIA"
	EnvLogLevel         = "XLPKG_LOG_LEVEL"
)

// Options configures loading and summary behavior.
type Options struct {
	// ReadOnly keeps the archive open so rows can be streamed on demand.
	// The caller must Close the workbook.
	ReadOnly bool
	// KeepLinks specifies whether external link parts are read.
	// If nil, defaults to true.
	KeepLinks *bool
	// KeepVBA keeps a reference to the VBA project of macro-enabled files.
	KeepVBA bool
	// UnsupportedMedia decides whether dropped pictures are logged.
	UnsupportedMedia drawing.MediaPolicy
	// Mode specifies the summary mode (light, standard, verbose).
	Mode models.Mode
	// IncludeLinks specifies whether to include cell hyperlinks in summaries.
	// If nil, defaults to true for verbose mode, false otherwise.
	IncludeLinks *bool
	// IncludePrintAreas specifies whether to include print areas.
	// If nil, defaults to false for light mode, true otherwise.
	IncludePrintAreas *bool
	// Logger receives stage transitions and degraded loads. If nil, the
	// logrus standard logger is used.
	Logger logrus.FieldLogger
}

// DefaultOptions returns default load options.
func DefaultOptions() Options {
	return Options{
		Mode:             models.ModeStandard,
		UnsupportedMedia: drawing.MediaWarn,
	}
}

// OptionsFromEnvironment returns DefaultOptions overridden by the XLPKG_*
// environment variables.
func OptionsFromEnvironment() (Options, error) {
	opts := DefaultOptions()
	var err error
	if opts.ReadOnly, err = envBool(EnvReadOnly, opts.ReadOnly); err != nil {
		return Options{}, err
	}
	if v, ok := os.LookupEnv(EnvKeepLinks); ok {
		keep, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Options{}, fmt.Errorf("%s: %w", EnvKeepLinks, err)
		}
		opts.KeepLinks = &keep
	}
	if opts.KeepVBA, err = envBool(EnvKeepVBA, opts.KeepVBA); err != nil {
		return Options{}, err
	}
	if v, ok := os.LookupEnv(EnvUnsupportedMedia); ok {
		if opts.UnsupportedMedia, err = drawing.ParseMediaPolicy(v); err != nil {
			return Options{}, fmt.Errorf("%s: %w", EnvUnsupportedMedia, err)
		}
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		level, err := logrus.ParseLevel(strings.TrimSpace(v))
		if err != nil {
			return Options{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		logger := logrus.New()
		logger.SetLevel(level)
		opts.Logger = logger
	}
	return opts, nil
}

func envBool(name string, def bool) (bool, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}

// Validate reports options that cannot be honoured.
func (o Options) Validate() error {
	switch o.Mode {
	case "", models.ModeLight, models.ModeStandard, models.ModeVerbose:
	default:
		return fmt.Errorf("unknown mode %q", o.Mode)
	}
	switch o.UnsupportedMedia {
	case drawing.MediaSkip, drawing.MediaWarn:
	default:
		return fmt.Errorf("unknown media policy %d", o.UnsupportedMedia)
	}
	return nil
}

// ShouldKeepLinks returns whether to read external link parts.
func (o Options) ShouldKeepLinks() bool {
	if o.KeepLinks != nil {
		return *o.KeepLinks
	}
	return true
}

// ShouldIncludeLinks returns whether to include cell hyperlinks.
func (o Options) ShouldIncludeLinks() bool {
	if o.IncludeLinks != nil {
		return *o.IncludeLinks
	}
	return o.Mode == models.ModeVerbose
}

// ShouldIncludePrintAreas returns whether to include print areas.
func (o Options) ShouldIncludePrintAreas() bool {
	if o.IncludePrintAreas != nil {
		return *o.IncludePrintAreas
	}
	return o.Mode != models.ModeLight
}

func (o Options) mode() models.Mode {
	if o.Mode == "" {
		return models.ModeStandard
	}
	return o.Mode
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}
