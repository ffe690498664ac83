package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// ErrInvalidCatalog is returned when catalog data fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

const schemaURL = "schema://catalog.json"

// Catalog is an ordered, read-only collection of lessons.
type Catalog struct {
	lessons []Lesson
	byID    map[string]int
}

type document struct {
	Lessons []Lesson `yaml:"lessons"`
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(catalogSchema))
	if err != nil {
		return nil, fmt.Errorf("parse catalog schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Parse(embeddedCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
})

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	return defaultCatalog()
}

// Parse decodes a YAML catalog document, validates it against the catalog
// schema and checks that lesson IDs are unique.
func Parse(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidCatalog, err)
	}

	// The schema validator wants JSON values, so round-trip through JSON.
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: convert to json: %v", ErrInvalidCatalog, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(asJSON))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return New(doc.Lessons)
}

// New builds a catalog from lessons, keeping their order.
func New(lessons []Lesson) (*Catalog, error) {
	if len(lessons) == 0 {
		return nil, fmt.Errorf("%w: no lessons", ErrInvalidCatalog)
	}
	c := &Catalog{
		lessons: make([]Lesson, len(lessons)),
		byID:    make(map[string]int, len(lessons)),
	}
	for i, l := range lessons {
		if _, dup := c.byID[l.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate lesson ID %q", ErrInvalidCatalog, l.ID)
		}
		l.Tags = append([]string(nil), l.Tags...)
		l.Body = strings.TrimSpace(l.Body)
		c.lessons[i] = l
		c.byID[l.ID] = i
	}
	return c, nil
}

// Len returns the number of lessons.
func (c *Catalog) Len() int {
	return len(c.lessons)
}

// At returns the i-th lesson in catalog order.
func (c *Catalog) At(i int) Lesson {
	return c.lessons[i]
}

// All returns a copy of the lessons in catalog order.
func (c *Catalog) All() []Lesson {
	out := make([]Lesson, len(c.lessons))
	copy(out, c.lessons)
	return out
}

// Get looks up a lesson by ID.
func (c *Catalog) Get(id string) (Lesson, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Lesson{}, false
	}
	return c.lessons[i], true
}

// Contains reports whether a lesson with the given ID exists.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}
