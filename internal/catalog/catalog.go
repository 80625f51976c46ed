// Package catalog lists the products that can be put in the cart. Name and
// price are declared as data, never derived from presentation markup.
package catalog

import (
	_ "embed"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"strings"
)

//go:embed default.yaml
var defaultCatalog []byte

type Product struct {
	Name    string `yaml:"name"`
	Price   int64  `yaml:"price"`
	Section string `yaml:"section"`
}

type Catalog struct {
	Products []Product `yaml:"products"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return parse(defaultCatalog)
}

// Load reads a catalog file; an empty path means the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(c.Products))
	for i, p := range c.Products {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("product #%d has no name", i+1)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %q has a negative price", name)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("product %q is listed twice", name)
		}
		seen[key] = true
		c.Products[i].Name = name
	}

	return &c, nil
}

// Lookup finds a product by name, ignoring case.
func (c *Catalog) Lookup(name string) (Product, bool) {
	name = strings.TrimSpace(name)
	for _, p := range c.Products {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Product{}, false
}

// Filter returns products whose name contains query, ignoring case.
// An empty query matches everything.
func (c *Catalog) Filter(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]Product, 0, len(c.Products))
	for _, p := range c.Products {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Section(section string) []Product {
	out := make([]Product, 0)
	for _, p := range c.Products {
		if p.Section == section {
			out = append(out, p)
		}
	}
	return out
}
