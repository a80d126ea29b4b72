package trellis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/trellis"
	"github.com/agiangrant/trellis/harness"
	"github.com/agiangrant/trellis/retained"
	"github.com/agiangrant/trellis/text"
	"github.com/agiangrant/trellis/tw"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, trellis.ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	config, err := trellis.LoadConfig(filepath.Join(t.TempDir(), trellis.ConfigFile))
	require.NoError(t, err)
	assert.Equal(t, trellis.DefaultConfig(), config)
}

func TestLoadConfigKeepsUnsetDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[engine]
max_rewrite_iterations = 8
debug_paint = true

[window]
title = "Demo"

[theme]
base_classes = "text-sm"
`)
	config, err := trellis.LoadConfig(path)
	require.NoError(t, err)

	want := trellis.DefaultConfig()
	want.Engine.MaxRewriteIterations = 8
	want.Engine.DebugPaint = true
	want.Window.Title = "Demo"
	want.Theme.BaseClasses = "text-sm"
	if diff := cmp.Diff(want, config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigResolvesFontPaths(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[fonts.files]
brand = "fonts/brand.ttf"
abs = "/usr/share/fonts/abs.ttf"
`)
	config, err := trellis.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"brand": filepath.Join(dir, "fonts", "brand.ttf"),
		"abs":   "/usr/share/fonts/abs.ttf",
	}, config.Fonts.Files)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := trellis.LoadConfig(writeConfig(t, dir, "[engine\n"))
	assert.ErrorContains(t, err, "failed to parse")

	_, err = trellis.LoadConfig(writeConfig(t, dir, "[engine]\nmax_rewrite_iterations = 0\n"))
	assert.ErrorContains(t, err, "max_rewrite_iterations")

	_, err = trellis.LoadConfig(writeConfig(t, dir, "[window]\nwidth = -1\n"))
	assert.ErrorContains(t, err, "window size")
}

func TestSaveConfigRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), trellis.ConfigFile)
	config := trellis.DefaultConfig()
	config.Theme.Colors = map[string]string{"brand": "#1da1f2"}
	config.Engine.ScaleFactor = 2

	require.NoError(t, trellis.SaveConfig(path, config))
	loaded, err := trellis.LoadConfig(path)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(config, loaded, cmpopts.EquateEmpty()))
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	got, err := trellis.FindConfig(nested)
	require.NoError(t, err)
	// TempDir may sit behind a symlink.
	wantInfo, _ := os.Stat(want)
	gotInfo, _ := os.Stat(got)
	assert.True(t, os.SameFile(wantInfo, gotInfo))
}

func TestOptionsApplyTheme(t *testing.T) {
	config := trellis.DefaultConfig()
	config.Engine.ScaleFactor = 2
	config.Fonts.DefaultFamily = text.MonoFamily
	config.Theme.Colors = map[string]string{"config-test-brand": "#1da1f2"}
	config.Theme.BaseClasses = "bg-config-test-brand"

	opts, err := config.Options()
	require.NoError(t, err)
	assert.Equal(t, retained.Size{Width: 1600, Height: 1200}, opts.WindowSize)
	assert.Equal(t, text.MonoFamily, opts.Fonts.DefaultFamilyName())

	brand, ok := tw.LookupColor("config-test-brand")
	require.True(t, ok)

	pod := retained.NewWidgetPod(harness.NewSizedBox(10, 10))
	h := harness.New(harness.Column(pod), harness.WithOptions(opts))
	assert.Equal(t, brand, tw.Resolve[tw.Background](h.Get(pod.ID()).Ctx()).Color)
}

func TestOptionsErrors(t *testing.T) {
	config := trellis.DefaultConfig()
	config.Fonts.Files = map[string]string{"brand": filepath.Join(t.TempDir(), "missing.ttf")}
	_, err := config.Options()
	assert.Error(t, err)

	config = trellis.DefaultConfig()
	config.Fonts.DefaultFamily = "serif"
	_, err = config.Options()
	assert.ErrorContains(t, err, "fonts.default_family")

	config = trellis.DefaultConfig()
	config.Theme.Colors = map[string]string{"bad": "red"}
	_, err = config.Options()
	assert.ErrorContains(t, err, "theme.colors")
}

func TestNewRenderRoot(t *testing.T) {
	config := trellis.DefaultConfig()
	config.Window.Width, config.Window.Height = 320, 240
	root, err := config.NewRenderRoot(harness.Expand())
	require.NoError(t, err)
	ref, ok := root.GetWidget(root.RootID())
	require.True(t, ok)
	assert.Equal(t, retained.Size{Width: 320, Height: 240}, ref.State().Size)
}
