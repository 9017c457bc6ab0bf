// Package fsutil provides small filesystem helpers shared by the app layer.
package fsutil

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/vk/packcore/internal/vfs"
)

// FindByExtension recursively searches root for files ending with the given
// extension and returns their paths in lexical order.
func FindByExtension(fs *vfs.FS, root vfs.Path, extension string) ([]vfs.Path, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var found []vfs.Path
	err := afero.Walk(fs.Backend(), root.String(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), extension) {
			found = append(found, vfs.NewPath(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(found, func(i, j int) bool { return found[i].String() < found[j].String() })
	return found, nil
}
