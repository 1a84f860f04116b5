package live

import (
	"fmt"

	"github.com/cwbudde/algo-delay/dsp/param"
)

// Action is the outcome of a key press.
type Action int

const (
	ActionNone Action = iota
	ActionChanged
	ActionQuit
)

const (
	timeStepMs = 10.0
	amountStep = 0.05
	keyCtrlC   = 0x03
	keyEscape  = 0x1b
)

// Control maps key presses to parameter edits.
type Control struct {
	params *param.Set
}

// NewControl returns a Control editing params.
func NewControl(params *param.Set) *Control {
	return &Control{params: params}
}

// HandleKey applies the edit bound to key.
func (c *Control) HandleKey(key byte) Action {
	p := c.params
	switch key {
	case '[':
		p.FreqLeft.Add(-timeStepMs)
	case ']':
		p.FreqLeft.Add(timeStepMs)
	case '{':
		p.FreqRight.Add(-timeStepMs)
	case '}':
		p.FreqRight.Add(timeStepMs)
	case '-':
		p.Feedback.Add(-amountStep)
	case '=', '+':
		p.Feedback.Add(amountStep)
	case ',':
		p.DryWet.Add(-amountStep)
	case '.':
		p.DryWet.Add(amountStep)
	case 'l', 'L':
		p.Link.Toggle()
	case 'm', 'M':
		p.MixLaw.Next()
	case 'r', 'R':
		p.Reset()
	case 'q', 'Q', keyCtrlC, keyEscape:
		return ActionQuit
	default:
		return ActionNone
	}
	return ActionChanged
}

// Help describes the key bindings.
func Help() string {
	return "[ ] left time  { } right time  - = feedback  , . dry/wet  l link  m mix law  r reset  q quit"
}

// Status formats the current parameter values on one line.
func Status(p *param.Set) string {
	return fmt.Sprintf("L %s  R %s  fb %s  mix %s  link %s  law %s",
		p.FreqLeft, p.FreqRight, p.Feedback, p.DryWet, p.Link, p.MixLaw)
}
