package txtshot

import (
	"sync"

	"golang.org/x/image/font/sfnt"
)

var globalCache = &cache{}

// cache keeps parsed fonts by file path so that re-creating faces does not read and parse them again.
type cache struct {
	m sync.Map
}

func LoadFontCache(key string) (*sfnt.Font, bool) {
	if v, ok := globalCache.m.Load(key); ok {
		if f, ok := v.(*sfnt.Font); ok {
			return f, true
		}
	}
	return nil, false
}

func StoreFontCache(key string, f *sfnt.Font) {
	if f == nil {
		return
	}
	globalCache.m.Store(key, f)
}
