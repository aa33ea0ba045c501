package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Texture is a loaded image handle. *ebiten.Image satisfies it, as does any
// image.Image.
type Texture interface {
	Bounds() image.Rectangle
}

// Catalog maps texture names to loaded handles.
type Catalog struct {
	textures map[string]Texture
	names    []string
}

func NewCatalog() *Catalog {
	return &Catalog{textures: make(map[string]Texture)}
}

// Add registers tex under name, replacing any previous entry.
func (c *Catalog) Add(name string, tex Texture) {
	if c == nil || name == "" || tex == nil {
		return
	}
	if _, ok := c.textures[name]; !ok {
		c.names = append(c.names, name)
		sort.Strings(c.names)
	}
	c.textures[name] = tex
}

// Get returns the texture registered under name.
func (c *Catalog) Get(name string) (Texture, bool) {
	if c == nil || name == "" {
		return nil, false
	}
	tex, ok := c.textures[name]
	return tex, ok
}

// Names returns every texture name in sorted order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.textures)
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// LoadDir decodes every image file in dir into a new catalog, keyed by the
// file name without its extension. convert turns the decoded image into the
// runtime handle; nil keeps the decoded image.Image. Files that fail to
// decode are logged and skipped.
func LoadDir(dir string, convert func(image.Image) Texture) (*Catalog, error) {
	c := NewCatalog()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return c, fmt.Errorf("texture: read dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !imageExts[ext] {
			continue
		}
		path := filepath.Join(dir, e.Name())
		b, err := os.ReadFile(path)
		if err != nil {
			log.Printf("texture: read %s: %v", path, err)
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			log.Printf("texture: decode %s: %v", path, err)
			continue
		}
		var tex Texture = img
		if convert != nil {
			tex = convert(img)
		}
		c.Add(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())), tex)
	}
	return c, nil
}
