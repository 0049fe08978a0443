package layouts

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplatesYAML []byte

const maxTemplateDimension = 100

// Template is a named default grid a venue layout can be generated from
type Template struct {
	Name           string `yaml:"name" json:"name"`
	DisplayName    string `yaml:"display_name" json:"display_name"`
	Description    string `yaml:"description" json:"description"`
	Rows           int    `yaml:"rows" json:"rows"`
	Cols           int    `yaml:"cols" json:"cols"`
	EstimatedSeats int    `yaml:"estimated_seats" json:"estimated_seats"`
	Category       string `yaml:"category" json:"category"`
	IsPopular      bool   `yaml:"popular" json:"is_popular"`
}

// Catalogue is the read-only set of templates, loaded once at startup
type Catalogue struct {
	templates map[string]Template
}

type catalogueFile struct {
	Templates []Template `yaml:"templates"`
}

// ParseCatalogue builds a catalogue from its YAML definition
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse template catalogue: %w", err)
	}

	c := &Catalogue{templates: make(map[string]Template, len(file.Templates))}
	for _, t := range file.Templates {
		if t.Name == "" {
			return nil, fmt.Errorf("template without a name")
		}
		if t.Rows < 1 || t.Cols < 1 || t.Rows > maxTemplateDimension || t.Cols > maxTemplateDimension {
			return nil, fmt.Errorf("template %s: rows and cols must be between 1 and %d", t.Name, maxTemplateDimension)
		}
		if _, exists := c.templates[t.Name]; exists {
			return nil, fmt.Errorf("duplicate template %s", t.Name)
		}
		if t.DisplayName == "" {
			t.DisplayName = t.Name
		}
		c.templates[t.Name] = t
	}
	return c, nil
}

// LoadCatalogue reads the catalogue from path, or the built-in one when path is empty
func LoadCatalogue(path string) (*Catalogue, error) {
	if path == "" {
		return ParseCatalogue(defaultTemplatesYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template catalogue %s: %w", path, err)
	}
	return ParseCatalogue(data)
}

// DefaultCatalogue returns the built-in catalogue
func DefaultCatalogue() *Catalogue {
	c, err := ParseCatalogue(defaultTemplatesYAML)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalogue) Get(name string) (Template, bool) {
	t, ok := c.templates[name]
	return t, ok
}

// List returns popular templates first, then smaller ones first
func (c *Catalogue) List() []Template {
	list := make([]Template, 0, len(c.templates))
	for _, t := range c.templates {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].IsPopular != list[j].IsPopular {
			return list[i].IsPopular
		}
		if list[i].EstimatedSeats != list[j].EstimatedSeats {
			return list[i].EstimatedSeats < list[j].EstimatedSeats
		}
		return list[i].Name < list[j].Name
	})
	return list
}

func (c *Catalogue) Len() int {
	return len(c.templates)
}
