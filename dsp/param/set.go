package param

import "sort"

// Parameter ids understood by the delay.
const (
	IDFreqLeft  = "freqLeft"
	IDFreq      = "freq" // mono alias of IDFreqLeft
	IDFreqRight = "freqRight"
	IDFeedback  = "feedback"
	IDDryWet    = "dryWet"
	IDLink      = "link"
	IDMixLaw    = "mixLaw"
)

// Ranges and defaults of the delay controls.
const (
	MinDelayMs     = 1.0
	MaxDelayMs     = 3000.0
	DefaultDelayMs = 50.0

	MinFeedback     = 0.01
	MaxFeedback     = 1.0
	DefaultFeedback = 0.5

	MinDryWet     = 0.01
	MaxDryWet     = 1.0
	DefaultDryWet = 0.5
)

// MixLawOptions names the dry/wet laws in option order.
var MixLawOptions = []string{"linear", "boost"}

// Set is the delay's parameter store.
type Set struct {
	FreqLeft  *Float
	FreqRight *Float
	Feedback  *Float
	DryWet    *Float
	Link      *Bool
	MixLaw    *Choice

	byID map[string]Param
}

// NewSet returns a Set with every control at its default.
func NewSet() *Set {
	s := &Set{
		FreqLeft:  mustFloat(IDFreqLeft, "Delay Left", "ms", MinDelayMs, MaxDelayMs, DefaultDelayMs),
		FreqRight: mustFloat(IDFreqRight, "Delay Right", "ms", MinDelayMs, MaxDelayMs, DefaultDelayMs),
		Feedback:  mustFloat(IDFeedback, "Feedback", "", MinFeedback, MaxFeedback, DefaultFeedback),
		DryWet:    mustFloat(IDDryWet, "Dry/Wet", "", MinDryWet, MaxDryWet, DefaultDryWet),
		Link:      NewBool(IDLink, "Link", false),
	}

	mix, err := NewChoice(IDMixLaw, "Mix Law", MixLawOptions, 0)
	if err != nil {
		panic(err)
	}
	s.MixLaw = mix

	s.byID = map[string]Param{
		IDFreqLeft:  s.FreqLeft,
		IDFreq:      s.FreqLeft,
		IDFreqRight: s.FreqRight,
		IDFeedback:  s.Feedback,
		IDDryWet:    s.DryWet,
		IDLink:      s.Link,
		IDMixLaw:    s.MixLaw,
	}
	return s
}

func mustFloat(id, name, unit string, min, max, def float64) *Float {
	p, err := NewFloat(id, name, unit, min, max, def)
	if err != nil {
		panic(err)
	}
	return p
}

// DelayMs returns the delay time of channel ch. Channel 0 and negative
// indices map to the left control, everything else to the right.
func (s *Set) DelayMs(ch int) float64 {
	if ch <= 0 {
		return s.FreqLeft.Get()
	}
	return s.FreqRight.Get()
}

// FeedbackAmount returns the feedback gain.
func (s *Set) FeedbackAmount() float64 { return s.Feedback.Get() }

// DryWetAmount returns the wet proportion.
func (s *Set) DryWetAmount() float64 { return s.DryWet.Get() }

// Linked reports whether the right delay follows the left one.
func (s *Set) Linked() bool { return s.Link.Get() }

// MixLawIndex returns the selected dry/wet law.
func (s *Set) MixLawIndex() int { return s.MixLaw.Index() }

// Lookup returns the parameter registered under id.
func (s *Set) Lookup(id string) (Param, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// IDs returns all registered ids, aliases included, sorted.
func (s *Set) IDs() []string {
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reset restores every control to its default.
func (s *Set) Reset() {
	s.FreqLeft.Reset()
	s.FreqRight.Reset()
	s.Feedback.Reset()
	s.DryWet.Reset()
	s.Link.Reset()
	s.MixLaw.Reset()
}
