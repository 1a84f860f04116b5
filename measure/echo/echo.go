package echo

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-delay/dsp/core"
)

// Errors returned by echo analysis functions.
var (
	ErrEmptyIR           = errors.New("echo: impulse response is empty")
	ErrInvalidSampleRate = errors.New("echo: sample rate must be positive")
	ErrInvalidDelay      = errors.New("echo: delay must be at least one sample")
	ErrNoEcho            = errors.New("echo: no echo above the floor")
)

const (
	defaultFloorDB = -120
	defaultSearch  = 2
)

// Echo is one peak of the echo train.
type Echo struct {
	Index     int     // sample index of the peak
	Amplitude float64 // absolute peak value
	DB        float64 // peak level in dBFS
}

// Result holds echo analysis results.
type Result struct {
	Echoes     []Echo
	DecayDB    float64 // mean level change per echo in dB (negative when decaying)
	EchoesTo60 int     // echo periods after the first echo to fall 60 dB; -1 if never
	TimeTo60   float64 // EchoesTo60 in seconds; +Inf if never
	Measured   bool    // EchoesTo60 was observed rather than extrapolated
}

// Monotonic reports whether every echo is strictly quieter than the one
// before it.
func (r Result) Monotonic() bool {
	for i := 1; i < len(r.Echoes); i++ {
		if r.Echoes[i].Amplitude >= r.Echoes[i-1].Amplitude {
			return false
		}
	}
	return true
}

// Analyzer extracts the echo train of a delay with a known period.
type Analyzer struct {
	SampleRate   float64
	DelaySamples float64
	FloorDB      float64 // echoes below this level end the train
	Search       int     // peak search radius around each expected echo, in samples
}

// NewAnalyzer creates an analyzer for a delay of delaySamples at sampleRate.
func NewAnalyzer(sampleRate, delaySamples float64) *Analyzer {
	return &Analyzer{
		SampleRate:   sampleRate,
		DelaySamples: delaySamples,
		FloorDB:      defaultFloorDB,
		Search:       defaultSearch,
	}
}

// Analyze finds the echoes at multiples of the delay in ir, where ir[0] is
// the excitation instant.
func (a *Analyzer) Analyze(ir []float64) (Result, error) {
	if len(ir) == 0 {
		return Result{}, ErrEmptyIR
	}
	if !core.ValidSampleRate(a.SampleRate) {
		return Result{}, ErrInvalidSampleRate
	}
	if !(a.DelaySamples >= 1) || math.IsInf(a.DelaySamples, 0) {
		return Result{}, ErrInvalidDelay
	}

	echoes := a.findEchoes(ir)
	if len(echoes) == 0 {
		return Result{}, ErrNoEcho
	}

	res := Result{Echoes: echoes, EchoesTo60: -1, TimeTo60: math.Inf(1)}
	if n := len(echoes); n > 1 {
		res.DecayDB = (echoes[n-1].DB - echoes[0].DB) / float64(n-1)
	}

	target := echoes[0].DB - 60
	for k, e := range echoes {
		if e.DB <= target {
			res.EchoesTo60 = k
			res.Measured = true
			break
		}
	}
	if !res.Measured && res.DecayDB < 0 {
		res.EchoesTo60 = int(math.Ceil(-60 / res.DecayDB))
	}
	if res.EchoesTo60 >= 0 {
		res.TimeTo60 = float64(res.EchoesTo60) * a.DelaySamples / a.SampleRate
	}
	return res, nil
}

// findEchoes walks the expected echo positions until the train drops below
// the floor or runs off the end of ir.
func (a *Analyzer) findEchoes(ir []float64) []Echo {
	floor := a.FloorDB
	if floor == 0 || math.IsNaN(floor) {
		floor = defaultFloorDB
	}
	search := max(a.Search, 0)

	var echoes []Echo
	for k := 1; ; k++ {
		center := int(math.Round(float64(k) * a.DelaySamples))
		if center >= len(ir) {
			break
		}
		lo := max(center-search, 0)
		hi := min(center+search+1, len(ir))

		idx, peak := lo, math.Abs(ir[lo])
		for i := lo + 1; i < hi; i++ {
			if v := math.Abs(ir[i]); v > peak {
				idx, peak = i, v
			}
		}

		db := core.LinearToDB(peak)
		if peak == 0 || db < floor {
			break
		}
		echoes = append(echoes, Echo{Index: idx, Amplitude: peak, DB: db})
	}
	return echoes
}

// ImpulseResponse drives process with a unit impulse and returns n samples of
// its output. process runs in place on consecutive chunks of at most
// blockSize samples.
func ImpulseResponse(process func([]float64), n, blockSize int) []float64 {
	if n <= 0 {
		return nil
	}
	if blockSize <= 0 {
		blockSize = n
	}
	out := make([]float64, n)
	out[0] = 1
	for start := 0; start < n; start += blockSize {
		process(out[start:min(start+blockSize, n)])
	}
	return out
}
