package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// SupportedSchema is the range of catalog schema versions this build reads.
const SupportedSchema = "^1.0"

//go:embed data/catalog.yaml
var defaultCatalogYAML []byte

// Catalog is the validated, read-only set of boards and components.
type Catalog struct {
	SchemaVersion string

	boards     []*Board
	components []*Component
	boardByID  map[string]*Board
	compByID   map[string]*Component
}

// Options controls load-time checking.
type Options struct {
	// Lenient drops board overrides that reference unknown boards instead of
	// failing the load.
	Lenient bool
}

// LoadError collects every problem found while checking a catalog file.
type LoadError struct {
	Problems []string
}

func (e *LoadError) Error() string {
	if len(e.Problems) == 1 {
		return "catalog: " + e.Problems[0]
	}
	return fmt.Sprintf("catalog: %d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

type catalogFile struct {
	SchemaVersion string       `yaml:"schema_version"`
	Boards        []*Board     `yaml:"boards"`
	Components    []*Component `yaml:"components"`
}

// Load parses and checks a YAML catalog.
func Load(r io.Reader, opts Options) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Problems: []string{"empty catalog"}}
		}
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	if err := checkSchema(file.SchemaVersion); err != nil {
		return nil, err
	}
	return build(file, opts)
}

// LoadFile loads a catalog from a YAML file on disk.
func LoadFile(path string, opts Options) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()
	return Load(f, opts)
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Load(bytes.NewReader(defaultCatalogYAML), Options{})
	})
	return defaultCat, defaultErr
}

func checkSchema(raw string) error {
	if raw == "" {
		return &LoadError{Problems: []string{"schema_version is required"}}
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return &LoadError{Problems: []string{fmt.Sprintf("schema_version %q: %v", raw, err)}}
	}
	c, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return fmt.Errorf("catalog: supported schema constraint: %w", err)
	}
	if !c.Check(v) {
		return &LoadError{Problems: []string{fmt.Sprintf("schema_version %s not supported (want %s)", v, SupportedSchema)}}
	}
	return nil
}

func build(file catalogFile, opts Options) (*Catalog, error) {
	c := &Catalog{
		SchemaVersion: file.SchemaVersion,
		boardByID:     make(map[string]*Board, len(file.Boards)),
		compByID:      make(map[string]*Component, len(file.Components)),
	}
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	for i, b := range file.Boards {
		if b == nil {
			addf("board #%d is empty", i)
			continue
		}
		if b.ID == "" {
			addf("board #%d has no id", i)
			continue
		}
		if _, dup := c.boardByID[b.ID]; dup {
			addf("duplicate board id %q", b.ID)
			continue
		}
		if b.DisplayName == "" {
			addf("board %q has no name", b.ID)
		}
		if len(b.Pins) == 0 {
			addf("board %q has no pins", b.ID)
		}
		for j, p := range b.Pins {
			if p.Label == "" {
				addf("board %q pin %d has no label", b.ID, j)
			}
			if p.untyped {
				addf("board %q pin %d has no type", b.ID, j)
			}
		}
		c.boardByID[b.ID] = b
		c.boards = append(c.boards, b)
	}

	for i, comp := range file.Components {
		if comp == nil {
			addf("component #%d is empty", i)
			continue
		}
		if comp.ID == "" {
			addf("component #%d has no id", i)
			continue
		}
		if _, dup := c.compByID[comp.ID]; dup {
			addf("duplicate component id %q", comp.ID)
			continue
		}
		if comp.DisplayName == "" {
			addf("component %q has no name", comp.ID)
		}
		if len(comp.DataRequirement) == 0 {
			addf("component %q has an empty data requirement", comp.ID)
		}
		for _, capability := range comp.DataRequirement {
			if capability.IsRail() {
				addf("component %q lists rail capability %s as a data requirement", comp.ID, capability)
			}
		}
		if comp.PowerPins < 0 || comp.GroundPins < 0 {
			addf("component %q has a negative rail pin count", comp.ID)
		}
		for k := range comp.Dependencies {
			rule := &comp.Dependencies[k]
			if rule.Type == "" {
				addf("component %q dependency #%d has no type", comp.ID, k)
			}
			if rule.undeclared {
				addf("component %q dependency %q has no default_required", comp.ID, rule.Type)
			}
			for boardID, o := range rule.BoardOverrides {
				if _, ok := c.boardByID[boardID]; ok {
					if o.undeclared {
						addf("component %q dependency %q override for board %q has no required", comp.ID, rule.Type, boardID)
					}
					continue
				}
				if opts.Lenient {
					delete(rule.BoardOverrides, boardID)
					continue
				}
				addf("component %q dependency %q overrides unknown board %q", comp.ID, rule.Type, boardID)
			}
		}
		c.compByID[comp.ID] = comp
		c.components = append(c.components, comp)
	}

	if len(problems) > 0 {
		return nil, &LoadError{Problems: problems}
	}
	return c, nil
}

// Board looks up a board by id.
func (c *Catalog) Board(id string) (*Board, bool) {
	b, ok := c.boardByID[id]
	return b, ok
}

// Component looks up a component by id.
func (c *Catalog) Component(id string) (*Component, bool) {
	comp, ok := c.compByID[id]
	return comp, ok
}

// Boards returns the boards in declaration order.
func (c *Catalog) Boards() []*Board {
	out := make([]*Board, len(c.boards))
	copy(out, c.boards)
	return out
}

// Components returns the components in declaration order.
func (c *Catalog) Components() []*Component {
	out := make([]*Component, len(c.components))
	copy(out, c.components)
	return out
}
