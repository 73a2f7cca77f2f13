package library

import (
	"os"
	"path/filepath"
)

// Cover art is matched by basename then extension, so cover.jpg beats
// folder.png even when both exist.
var (
	coverBases = []string{"cover", "folder", "album", "front"}
	coverExts  = []string{".jpg", ".jpeg", ".png"}
)

// CoverArt returns the path of an album art image stored next to the
// track, or an empty string when the directory has none.
func CoverArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, base := range coverBases {
		for _, ext := range coverExts {
			p := filepath.Join(dir, base+ext)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p
			}
		}
	}
	return ""
}
