package xlpkg

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/drawing"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/models"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, models.ModeStandard, opts.Mode)
	assert.Equal(t, drawing.MediaWarn, opts.UnsupportedMedia)
	assert.True(t, opts.ShouldKeepLinks())
	assert.False(t, opts.ShouldIncludeLinks())
	assert.True(t, opts.ShouldIncludePrintAreas())
	assert.NoError(t, opts.Validate())
}

func TestOptionsShouldHelpers(t *testing.T) {
	yes, no := true, false

	verbose := Options{Mode: models.ModeVerbose}
	assert.True(t, verbose.ShouldIncludeLinks())
	verbose.IncludeLinks = &no
	assert.False(t, verbose.ShouldIncludeLinks())

	light := Options{Mode: models.ModeLight}
	assert.False(t, light.ShouldIncludePrintAreas())
	light.IncludePrintAreas = &yes
	assert.True(t, light.ShouldIncludePrintAreas())

	assert.False(t, Options{KeepLinks: &no}.ShouldKeepLinks())
	assert.Equal(t, models.ModeStandard, Options{}.mode())
	assert.Equal(t, logrus.StandardLogger(), Options{}.logger())
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, Options{}.Validate())
	assert.Error(t, Options{Mode: "full"}.Validate())
	assert.Error(t, Options{UnsupportedMedia: drawing.MediaPolicy(7)}.Validate())
}

func TestOptionsFromEnvironment(t *testing.T) {
	t.Setenv(EnvReadOnly, "true")
	t.Setenv(EnvKeepLinks, "0")
	t.Setenv(EnvKeepVBA, " 1 ")
	t.Setenv(EnvUnsupportedMedia, "skip")
	t.Setenv(EnvLogLevel, "debug")

	opts, err := OptionsFromEnvironment()
	require.NoError(t, err)
	assert.True(t, opts.ReadOnly)
	assert.False(t, opts.ShouldKeepLinks())
	assert.True(t, opts.KeepVBA)
	assert.Equal(t, drawing.MediaSkip, opts.UnsupportedMedia)
	logger, ok := opts.Logger.(*logrus.Logger)
	require.True(t, ok)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestOptionsFromEnvironmentRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, value string
	}{
		{EnvReadOnly, "maybe"},
		{EnvKeepLinks, "sometimes"},
		{EnvKeepVBA, "yes please"},
		{EnvUnsupportedMedia, "convert"},
		{EnvLogLevel, "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.name, tt.value)
			_, err := OptionsFromEnvironment()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.name)
		})
	}
}

func TestInvalidFileTypeError(t *testing.T) {
	err := error(&InvalidFileTypeError{Path: "a.xls", Ext: ".xls"})
	assert.True(t, errors.Is(err, ErrInvalidFileType))
	assert.Contains(t, err.Error(), "a.xls")
}

func TestLoadErrorMessage(t *testing.T) {
	err := newLoadError(StageStyles, "xl/styles.xml", errors.New("boom"))
	assert.Equal(t, "load failed at styles-read (xl/styles.xml): boom", err.Error())
	assert.Equal(t, "load failed at complete: boom", newLoadError(StageComplete, "", errors.New("boom")).Error())
}
