// internal/catalog/loader.go
package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File es la forma YAML de un archivo de extensión del catálogo:
//
//	categories:
//	  - name: forums
//	    title: Forums
//	    sources:
//	      - name: Example
//	        url: https://forum.example.com/search?q={phone}
type File struct {
	Categories []Category `yaml:"categories"`
}

// Load decodifica categorías desde YAML. Las claves desconocidas son error.
func Load(r io.Reader) ([]Category, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode catalog yaml: %w", err)
	}
	return f.Categories, nil
}

// LoadFile lee un archivo de extensión desde disco.
func LoadFile(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cats, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cats, nil
}

// WriteYAML escribe el catálogo en el formato que acepta Load.
func (c *Catalog) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(File{Categories: c.Snapshot()}); err != nil {
		return fmt.Errorf("encode catalog yaml: %w", err)
	}
	return enc.Close()
}

// FromConfig arma el catálogo de la corrida a partir del incluido, el
// archivo de extensión opcional y el filtro de categorías.
func FromConfig(extensionFile string, only []string) (*Catalog, error) {
	c := Default()
	if extensionFile != "" {
		ext, err := LoadFile(extensionFile)
		if err != nil {
			return nil, err
		}
		if c, err = c.Merge(ext); err != nil {
			return nil, err
		}
	}
	return c.Filter(only)
}
