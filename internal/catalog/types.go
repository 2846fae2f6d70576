// Package catalog holds the static board and component reference data the
// planner validates placements against.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Capability is the single role a board pin can play.
type Capability int

const (
	CapGPIO Capability = iota
	CapI2C
	CapSPI
	CapUART
	CapPower
	CapGround
)

var capabilityNames = [...]string{
	CapGPIO:   "gpio",
	CapI2C:    "i2c",
	CapSPI:    "spi",
	CapUART:   "uart",
	CapPower:  "power",
	CapGround: "ground",
}

func (c Capability) String() string {
	if c < 0 || int(c) >= len(capabilityNames) {
		return fmt.Sprintf("capability(%d)", int(c))
	}
	return capabilityNames[c]
}

// IsRail reports whether pins of this capability belong to a shared power or
// ground rail and can never carry a data assignment.
func (c Capability) IsRail() bool {
	return c == CapPower || c == CapGround
}

// ParseCapability converts a capability tag (case-insensitive) to a Capability.
func ParseCapability(s string) (Capability, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	for i, name := range capabilityNames {
		if name == tag {
			return Capability(i), nil
		}
	}
	return 0, fmt.Errorf("unknown capability %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Capability) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(capabilityNames) {
		return nil, fmt.Errorf("invalid capability %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Capability) UnmarshalText(text []byte) error {
	parsed, err := ParseCapability(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// RequiredStatus says whether a supporting dependency is needed.
// On the wire it is true, false or the string "optional".
type RequiredStatus int

const (
	NotRequired RequiredStatus = iota
	Required
	Optional
)

func (r RequiredStatus) String() string {
	switch r {
	case Required:
		return "true"
	case Optional:
		return "optional"
	default:
		return "false"
	}
}

func parseRequiredStatus(v any) (RequiredStatus, error) {
	switch t := v.(type) {
	case bool:
		if t {
			return Required, nil
		}
		return NotRequired, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "required":
			return Required, nil
		case "false":
			return NotRequired, nil
		case "optional":
			return Optional, nil
		}
		return NotRequired, fmt.Errorf("invalid required status %q", t)
	case nil:
		return NotRequired, fmt.Errorf("required status is missing")
	default:
		return NotRequired, fmt.Errorf("invalid required status %v", v)
	}
}

// MarshalJSON emits true, false or "optional".
func (r RequiredStatus) MarshalJSON() ([]byte, error) {
	if r == Optional {
		return json.Marshal("optional")
	}
	return json.Marshal(r == Required)
}

// UnmarshalJSON accepts true, false or "optional".
func (r *RequiredStatus) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := parseRequiredStatus(v)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalYAML emits true, false or "optional".
func (r RequiredStatus) MarshalYAML() (any, error) {
	if r == Optional {
		return "optional", nil
	}
	return r == Required, nil
}

// UnmarshalYAML accepts true, false or "optional".
func (r *RequiredStatus) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	parsed, err := parseRequiredStatus(v)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*r = parsed
	return nil
}

// Override replaces a dependency's default status on one board.
type Override struct {
	RequiredStatus RequiredStatus `yaml:"required" json:"required"`
	Reason         string         `yaml:"reason" json:"reason,omitempty"`

	undeclared bool
}

// UnmarshalYAML notes an override that leaves out required, so the load
// checks can report it instead of reading it as false.
func (o *Override) UnmarshalYAML(unmarshal func(any) error) error {
	var raw struct {
		Required *RequiredStatus `yaml:"required"`
		Reason   string          `yaml:"reason"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*o = Override{Reason: raw.Reason, undeclared: raw.Required == nil}
	if raw.Required != nil {
		o.RequiredStatus = *raw.Required
	}
	return nil
}

// DependencyRule declares a supporting part a component may need.
type DependencyRule struct {
	Type            string              `yaml:"type" json:"type"`
	DefaultRequired RequiredStatus      `yaml:"default_required" json:"default_required"`
	BoardOverrides  map[string]Override `yaml:"board_overrides,omitempty" json:"board_overrides,omitempty"`

	undeclared bool
}

// UnmarshalYAML notes a rule that leaves out default_required.
func (d *DependencyRule) UnmarshalYAML(unmarshal func(any) error) error {
	var raw struct {
		Type            string              `yaml:"type"`
		DefaultRequired *RequiredStatus     `yaml:"default_required"`
		BoardOverrides  map[string]Override `yaml:"board_overrides"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*d = DependencyRule{Type: raw.Type, BoardOverrides: raw.BoardOverrides, undeclared: raw.DefaultRequired == nil}
	if raw.DefaultRequired != nil {
		d.DefaultRequired = *raw.DefaultRequired
	}
	return nil
}

// Component is a sensor or actuator that can be placed on a board pin.
type Component struct {
	ID              string            `yaml:"id" json:"id"`
	DisplayName     string            `yaml:"name" json:"name"`
	DataRequirement []Capability      `yaml:"data" json:"data"`
	PowerPins       int               `yaml:"power" json:"power"`
	GroundPins      int               `yaml:"ground" json:"ground"`
	Dependencies    []DependencyRule  `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	Metadata        map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Accepts reports whether the component can use a pin of the given capability
// for its signal connection.
func (c *Component) Accepts(capability Capability) bool {
	for _, want := range c.DataRequirement {
		if want == capability {
			return true
		}
	}
	return false
}

// PinSpec is one physical header pin.
type PinSpec struct {
	Label      string     `yaml:"label" json:"label"`
	Capability Capability `yaml:"type" json:"type"`

	untyped bool
}

// UnmarshalYAML notes a pin that leaves out its type. The zero Capability is
// gpio, so an untyped pin would otherwise load as a data pin.
func (p *PinSpec) UnmarshalYAML(unmarshal func(any) error) error {
	var raw struct {
		Label string      `yaml:"label"`
		Type  *Capability `yaml:"type"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*p = PinSpec{Label: raw.Label, untyped: raw.Type == nil}
	if raw.Type != nil {
		p.Capability = *raw.Type
	}
	return nil
}

// Board is a development board with an ordered pin header.
type Board struct {
	ID          string    `yaml:"id" json:"id"`
	DisplayName string    `yaml:"name" json:"name"`
	Voltage     float64   `yaml:"voltage,omitempty" json:"voltage,omitempty"`
	Pins        []PinSpec `yaml:"pins" json:"pins"`
}

// Pin returns the pin at index, if it exists.
func (b *Board) Pin(index int) (PinSpec, bool) {
	if index < 0 || index >= len(b.Pins) {
		return PinSpec{}, false
	}
	return b.Pins[index], true
}

// CountCapability returns how many pins on the board carry the capability.
func (b *Board) CountCapability(capability Capability) int {
	n := 0
	for _, p := range b.Pins {
		if p.Capability == capability {
			n++
		}
	}
	return n
}
