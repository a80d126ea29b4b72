// Package text is the font and text-measurement service shared by widgets.
// It wraps github.com/gogpu/gg/text with a family registry whose default
// family is the embedded Go Regular font.
package text

import (
	"sort"
	"sync"

	gtext "github.com/gogpu/gg/text"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFamily is always registered and is used when a family is unknown.
const DefaultFamily = "sans"

// MonoFamily is the embedded Go Mono font.
const MonoFamily = "mono"

// FontContext maps family names to parsed font sources. Registration is
// append-only; lookups are safe from any goroutine.
type FontContext struct {
	mu            sync.RWMutex
	sources       map[string]*gtext.FontSource
	defaultFamily string
}

// NewFontContext returns a context with the embedded Go fonts registered.
func NewFontContext() (*FontContext, error) {
	fc := &FontContext{
		sources:       make(map[string]*gtext.FontSource),
		defaultFamily: DefaultFamily,
	}
	if err := fc.Register(DefaultFamily, goregular.TTF); err != nil {
		return nil, err
	}
	if err := fc.Register(MonoFamily, gomono.TTF); err != nil {
		return nil, err
	}
	return fc, nil
}

// Register parses font data and adds it under family.
func (fc *FontContext) Register(family string, data []byte) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if _, ok := fc.sources[family]; ok {
		return errors.Errorf("font family %q already registered", family)
	}
	src, err := gtext.NewFontSource(data)
	if err != nil {
		return errors.Wrapf(err, "failed to parse font family %q", family)
	}
	fc.sources[family] = src
	return nil
}

// RegisterFile loads a font file and adds it under family.
func (fc *FontContext) RegisterFile(family, path string) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if _, ok := fc.sources[family]; ok {
		return errors.Errorf("font family %q already registered", family)
	}
	src, err := gtext.NewFontSourceFromFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to load font %q from %s", family, path)
	}
	fc.sources[family] = src
	return nil
}

// SetDefaultFamily changes the fallback family. The family must already be
// registered.
func (fc *FontContext) SetDefaultFamily(family string) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if _, ok := fc.sources[family]; !ok {
		return errors.Errorf("font family %q is not registered", family)
	}
	fc.defaultFamily = family
	return nil
}

// DefaultFamilyName returns the current fallback family.
func (fc *FontContext) DefaultFamilyName() string {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return fc.defaultFamily
}

// Families lists registered families in sorted order.
func (fc *FontContext) Families() []string {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	out := make([]string, 0, len(fc.sources))
	for name := range fc.sources {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// HasFamily reports whether family is registered.
func (fc *FontContext) HasFamily(family string) bool {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	_, ok := fc.sources[family]
	return ok
}

// Face returns a face for family at size, falling back to the default family.
func (fc *FontContext) Face(family string, size float64) gtext.Face {
	fc.mu.RLock()
	src, ok := fc.sources[family]
	if !ok {
		src = fc.sources[fc.defaultFamily]
	}
	fc.mu.RUnlock()
	return src.Face(size)
}
