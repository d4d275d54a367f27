package share

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yaoapp/kun/log"
)

// Walk traverse the root dir and call the handler for each file with the given suffix
func Walk(root string, suffix string, cb func(root, filename string)) error {
	root = path.Join(root, "/")
	err := filepath.Walk(root, func(filename string, info os.FileInfo, err error) error {
		if err != nil {
			log.With(log.F{"root": root, "suffix": suffix, "filename": filename}).Error(err.Error())
			return err
		}
		if strings.HasSuffix(filename, suffix) {
			cb(root, filename)
		}
		return nil
	})
	return err
}

// ID parse unique name root: "/data/schemas"  file: "/data/schemas/foo/bar.form.json"
func ID(root string, file string) string {
	filename := strings.TrimPrefix(file, root+"/") // "foo/bar.form.json"
	namer := strings.Split(filename, ".")          // ["foo/bar", "form", "json"]
	nametypes := strings.Split(namer[0], "/")      // ["foo", "bar"]
	return strings.Join(nametypes, ".")            // "foo.bar"
}

// DirNotExists check if the dir is missing
func DirNotExists(dir string) bool {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return true
	}
	return false
}
