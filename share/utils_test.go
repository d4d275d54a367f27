package share

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	assert.Equal(t, "foo.bar", ID("/data/schemas", "/data/schemas/foo/bar.form.json"))
	assert.Equal(t, "contact", ID("/data/schemas", "/data/schemas/contact.json"))
}

func TestWalk(t *testing.T) {
	dir := t.TempDir()
	assert.Nil(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	assert.Nil(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("{}"), 0644))
	assert.Nil(t, os.WriteFile(filepath.Join(dir, "sub", "b.json"), []byte("{}"), 0644))
	assert.Nil(t, os.WriteFile(filepath.Join(dir, "c.txt"), []byte(""), 0644))

	ids := []string{}
	err := Walk(dir, ".json", func(root, filename string) {
		ids = append(ids, ID(root, filename))
	})
	assert.Nil(t, err)
	sort.Strings(ids)
	assert.Equal(t, []string{"a", "sub.b"}, ids)
}

func TestDirNotExists(t *testing.T) {
	assert.True(t, DirNotExists("/no/such/dir"))
	assert.False(t, DirNotExists(t.TempDir()))
}
