package listing

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// FileName is the stored name of an upload: <key>_<unixMillis><ext>.
func FileName(key Key, at time.Time, ext string) string {
	return fmt.Sprintf("%s_%d%s", key, at.UnixMilli(), strings.ToLower(ext))
}

// stamp returns the upload time encoded in name if name belongs to key.
// Only "<key>_<digits><ext>" matches, so Market2_lokacija1_1.xlsx is not a
// file of Market2.
func stamp(key Key, name string) (int64, bool) {
	prefix := key.String() + "_"
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	rest := strings.TrimPrefix(name, prefix)
	digits := strings.TrimSuffix(rest, filepath.Ext(rest))
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	ms, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}

// BelongsTo reports whether name is a stored upload of key.
func BelongsTo(key Key, name string) bool {
	_, ok := stamp(key, name)
	return ok
}

// newest picks the most recent upload of key among names.
func newest(key Key, names []string) (string, bool) {
	var (
		best   string
		bestMS int64 = -1
	)
	for _, name := range names {
		ms, ok := stamp(key, name)
		if !ok {
			continue
		}
		if ms > bestMS || (ms == bestMS && name > best) {
			best, bestMS = name, ms
		}
	}
	return best, bestMS >= 0
}
