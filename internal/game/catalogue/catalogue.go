package catalogue

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gisim/gisim-go/internal/game/rules"
	"github.com/gisim/gisim-go/internal/game/summon"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalogue []byte

// ErrUnknownSummon is returned when a name is not in the catalogue.
var ErrUnknownSummon = errors.New("unknown summon")

// File represents the top-level YAML structure.
type File struct {
	Summons []Entry `yaml:"summons"`
}

// Entry describes one summon definition.
type Entry struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Element string `yaml:"element"`
	Damage  int    `yaml:"damage"`
	Usages  int    `yaml:"usages"`
}

// Definition is a validated catalogue entry.
type Definition struct {
	Name    string
	Kind    summon.Kind
	Element rules.ElementType
	Damage  int
	Usages  int
}

// Catalogue maps summon names to their definitions, preserving file order.
type Catalogue struct {
	order []string
	defs  map[string]Definition
}

// Default returns the embedded catalogue.
func Default() (*Catalogue, error) {
	return Parse(defaultCatalogue)
}

// Load reads a catalogue file from disk.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates catalogue YAML.
func Parse(data []byte) (*Catalogue, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalogue YAML: %w", err)
	}

	c := &Catalogue{defs: make(map[string]Definition, len(f.Summons))}
	for i, entry := range f.Summons {
		def, err := entry.validate()
		if err != nil {
			return nil, fmt.Errorf("summon %d: %w", i, err)
		}
		if _, dup := c.defs[def.Name]; dup {
			return nil, fmt.Errorf("summon %d: duplicate name %q", i, def.Name)
		}
		c.order = append(c.order, def.Name)
		c.defs[def.Name] = def
	}
	return c, nil
}

func (e Entry) validate() (Definition, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return Definition{}, errors.New("missing name")
	}
	kind, err := summon.ParseKind(strings.ToUpper(strings.TrimSpace(e.Kind)))
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", name, err)
	}
	def := Definition{Name: name, Kind: kind, Damage: e.Damage, Usages: e.Usages}
	if def.Usages < 1 {
		return Definition{}, fmt.Errorf("%s: usages must be positive, got %d", name, def.Usages)
	}

	switch kind {
	case summon.KindAttack:
		element, err := rules.ParseElementType(e.Element)
		if err != nil {
			return Definition{}, fmt.Errorf("%s: %w", name, err)
		}
		if def.Damage < 0 {
			return Definition{}, fmt.Errorf("%s: damage must not be negative, got %d", name, def.Damage)
		}
		def.Element = element
	}
	return def, nil
}

// Names returns the summon names in file order.
func (c *Catalogue) Names() []string {
	cpy := make([]string, len(c.order))
	copy(cpy, c.order)
	return cpy
}

// Lookup returns the definition for a name.
func (c *Catalogue) Lookup(name string) (Definition, bool) {
	def, ok := c.defs[name]
	return def, ok
}

// Spawn creates a fresh summon owned by player.
func (c *Catalogue) Spawn(name string, player rules.PlayerID) (summon.Summon, error) {
	def, ok := c.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSummon, name)
	}
	switch def.Kind {
	case summon.KindAttack:
		s, err := summon.NewAttackSummon(def.Name, player, def.Usages, def.Element, def.Damage)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q has unsupported kind %s", ErrUnknownSummon, name, def.Kind)
	}
}
