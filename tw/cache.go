package tw

import "sync"

// styleCache holds parsed class strings. Colour names resolve at parse
// time, so RegisterColor clears it.
var (
	styleCache   = make(map[string]Style)
	styleCacheMu sync.RWMutex
)

// Classes returns the Style for a class string, parsing each distinct string
// once. The result is shared and must not be modified.
func Classes(classes string) Style {
	styleCacheMu.RLock()
	s, ok := styleCache[classes]
	styleCacheMu.RUnlock()
	if ok {
		return s
	}

	s = ParseClasses(classes)
	styleCacheMu.Lock()
	styleCache[classes] = s
	styleCacheMu.Unlock()
	return s
}

func clearStyleCache() {
	styleCacheMu.Lock()
	clear(styleCache)
	styleCacheMu.Unlock()
}
