package assets

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed menu/*.wav
var assetsFS embed.FS

// FS returns the asset tree rooted at dir when it exists on disk and the
// embedded assets otherwise.
func FS(dir string) fs.FS {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir)
		}
	}
	return assetsFS
}
