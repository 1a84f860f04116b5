package param

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/cwbudde/algo-delay/dsp/core"
)

// Param is the host-side view shared by all parameter kinds.
type Param interface {
	ID() string
	Name() string
	Normalized() float64
	SetNormalized(n float64)
	Reset()
	String() string
}

// Float is a continuous parameter with a plain-value range.
type Float struct {
	id, name, unit string
	min, max, def  float64
	bits           atomic.Uint64
}

// NewFloat returns a Float parameter set to def.
func NewFloat(id, name, unit string, min, max, def float64) (*Float, error) {
	if id == "" {
		return nil, fmt.Errorf("param id must not be empty")
	}
	if !(min < max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil, fmt.Errorf("param %s range must satisfy min < max: [%g, %g]", id, min, max)
	}
	if def < min || def > max || math.IsNaN(def) {
		return nil, fmt.Errorf("param %s default must be in [%g, %g]: %g", id, min, max, def)
	}
	p := &Float{id: id, name: name, unit: unit, min: min, max: max, def: def}
	p.bits.Store(math.Float64bits(def))
	return p, nil
}

// ID returns the parameter id.
func (p *Float) ID() string { return p.id }

// Name returns the display name.
func (p *Float) Name() string { return p.name }

// Unit returns the display unit.
func (p *Float) Unit() string { return p.unit }

// Range returns the plain-value bounds.
func (p *Float) Range() (min, max float64) { return p.min, p.max }

// Default returns the default plain value.
func (p *Float) Default() float64 { return p.def }

// Get returns the current plain value.
func (p *Float) Get() float64 {
	return math.Float64frombits(p.bits.Load())
}

// Set stores v clamped to the range and returns the stored value.
// NaN leaves the parameter unchanged.
func (p *Float) Set(v float64) float64 {
	if math.IsNaN(v) {
		return p.Get()
	}
	v = core.Clamp(v, p.min, p.max)
	p.bits.Store(math.Float64bits(v))
	return v
}

// Add offsets the value by delta, clamped to the range.
func (p *Float) Add(delta float64) float64 {
	return p.Set(p.Get() + delta)
}

// Normalized returns the value mapped to [0, 1].
func (p *Float) Normalized() float64 {
	return (p.Get() - p.min) / (p.max - p.min)
}

// SetNormalized stores a value given in [0, 1].
func (p *Float) SetNormalized(n float64) {
	p.Set(p.min + core.Clamp(n, 0, 1)*(p.max-p.min))
}

// Reset restores the default value.
func (p *Float) Reset() {
	p.bits.Store(math.Float64bits(p.def))
}

// String formats the value with its unit.
func (p *Float) String() string {
	s := strconv.FormatFloat(p.Get(), 'f', 2, 64)
	if p.unit == "" {
		return s
	}
	return s + " " + p.unit
}

// Bool is an on/off parameter.
type Bool struct {
	id, name string
	def      bool
	v        atomic.Bool
}

// NewBool returns a Bool parameter set to def.
func NewBool(id, name string, def bool) *Bool {
	p := &Bool{id: id, name: name, def: def}
	p.v.Store(def)
	return p
}

// ID returns the parameter id.
func (p *Bool) ID() string { return p.id }

// Name returns the display name.
func (p *Bool) Name() string { return p.name }

// Get returns the current state.
func (p *Bool) Get() bool { return p.v.Load() }

// Set stores the state.
func (p *Bool) Set(on bool) { p.v.Store(on) }

// Toggle flips the state and returns the new one.
func (p *Bool) Toggle() bool {
	for {
		old := p.v.Load()
		if p.v.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Normalized returns 1 when on.
func (p *Bool) Normalized() float64 {
	if p.Get() {
		return 1
	}
	return 0
}

// SetNormalized turns the parameter on for values >= 0.5.
func (p *Bool) SetNormalized(n float64) { p.Set(n >= 0.5) }

// Reset restores the default state.
func (p *Bool) Reset() { p.v.Store(p.def) }

// String returns "on" or "off".
func (p *Bool) String() string {
	if p.Get() {
		return "on"
	}
	return "off"
}

// Choice selects one of a fixed list of named options.
type Choice struct {
	id, name string
	options  []string
	def      int
	v        atomic.Int32
}

// NewChoice returns a Choice parameter set to option def.
func NewChoice(id, name string, options []string, def int) (*Choice, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("param %s needs at least one option", id)
	}
	if def < 0 || def >= len(options) {
		return nil, fmt.Errorf("param %s default must be in [0, %d): %d", id, len(options), def)
	}
	p := &Choice{id: id, name: name, options: append([]string(nil), options...), def: def}
	p.v.Store(int32(def))
	return p, nil
}

// ID returns the parameter id.
func (p *Choice) ID() string { return p.id }

// Name returns the display name.
func (p *Choice) Name() string { return p.name }

// Options returns the option names.
func (p *Choice) Options() []string { return append([]string(nil), p.options...) }

// Index returns the selected option index.
func (p *Choice) Index() int { return int(p.v.Load()) }

// Set selects option i, clamped to the valid range.
func (p *Choice) Set(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(p.options) {
		i = len(p.options) - 1
	}
	p.v.Store(int32(i))
}

// SetName selects the option called name.
func (p *Choice) SetName(name string) error {
	for i, o := range p.options {
		if o == name {
			p.Set(i)
			return nil
		}
	}
	return fmt.Errorf("param %s has no option %q", p.id, name)
}

// Next selects the following option, wrapping around.
func (p *Choice) Next() int {
	i := (p.Index() + 1) % len(p.options)
	p.Set(i)
	return i
}

// Normalized maps the index to [0, 1].
func (p *Choice) Normalized() float64 {
	if len(p.options) == 1 {
		return 0
	}
	return float64(p.Index()) / float64(len(p.options)-1)
}

// SetNormalized selects the option nearest to n.
func (p *Choice) SetNormalized(n float64) {
	p.Set(int(math.Round(core.Clamp(n, 0, 1) * float64(len(p.options)-1))))
}

// Reset restores the default option.
func (p *Choice) Reset() { p.v.Store(int32(p.def)) }

// String returns the selected option name.
func (p *Choice) String() string { return p.options[p.Index()] }
