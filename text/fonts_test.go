package text

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
)

func TestNewFontContextRegistersEmbeddedFonts(t *testing.T) {
	fc, err := NewFontContext()
	require.NoError(t, err)

	assert.Equal(t, []string{MonoFamily, DefaultFamily}, fc.Families())
	assert.Equal(t, DefaultFamily, fc.DefaultFamilyName())
}

func TestRegisterIsAppendOnly(t *testing.T) {
	fc, err := NewFontContext()
	require.NoError(t, err)

	require.NoError(t, fc.Register("bold", gobold.TTF))
	assert.True(t, fc.HasFamily("bold"))

	err = fc.Register("bold", gobold.TTF)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegisterRejectsBadData(t *testing.T) {
	fc, err := NewFontContext()
	require.NoError(t, err)

	err = fc.Register("broken", []byte("not a font"))
	require.Error(t, err)
	assert.False(t, fc.HasFamily("broken"))
}

func TestRegisterFileMissing(t *testing.T) {
	fc, err := NewFontContext()
	require.NoError(t, err)

	err = fc.RegisterFile("missing", filepath.Join(t.TempDir(), "nope.ttf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestSetDefaultFamily(t *testing.T) {
	fc, err := NewFontContext()
	require.NoError(t, err)

	require.Error(t, fc.SetDefaultFamily("serif"))
	require.NoError(t, fc.SetDefaultFamily(MonoFamily))
	assert.Equal(t, MonoFamily, fc.DefaultFamilyName())
}

func TestMeasure(t *testing.T) {
	fc, err := NewFontContext()
	require.NoError(t, err)

	short := fc.Measure("Hi", DefaultFamily, 16, 0)
	long := fc.Measure("Hello, world", DefaultFamily, 16, 0)

	assert.Greater(t, short.Width, 0.0)
	assert.Greater(t, long.Width, short.Width)
	assert.Equal(t, 1, long.Lines)
	assert.Greater(t, long.Baseline, 0.0)
	assert.LessOrEqual(t, long.Baseline, long.Height)

	empty := fc.Measure("", DefaultFamily, 16, 0)
	assert.Zero(t, empty.Width)
	assert.Greater(t, empty.Height, 0.0)
}

func TestMeasureWraps(t *testing.T) {
	fc, err := NewFontContext()
	require.NoError(t, err)

	line := fc.Measure("one two three four", DefaultFamily, 16, 0)
	wrapped := fc.Measure("one two three four", DefaultFamily, 16, line.Width/2)
	assert.Greater(t, wrapped.Lines, 1)
	assert.Greater(t, wrapped.Height, line.Height)
}

func TestUnknownFamilyFallsBack(t *testing.T) {
	fc, err := NewFontContext()
	require.NoError(t, err)

	want := fc.Advance("abc", DefaultFamily, 14)
	got := fc.Advance("abc", "no-such-family", 14)
	assert.InDelta(t, want, got, 1e-9)
}
