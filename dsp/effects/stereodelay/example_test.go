package stereodelay_test

import (
	"fmt"

	"github.com/cwbudde/algo-delay/dsp/effects/stereodelay"
	"github.com/cwbudde/algo-delay/dsp/param"
)

func ExampleProcessor() {
	params := param.NewSet()
	params.FreqLeft.Set(24)
	params.FreqRight.Set(24)
	params.DryWet.Set(1)

	p, err := stereodelay.New(params)
	if err != nil {
		panic(err)
	}
	if err := p.Prepare(48000, 2048); err != nil {
		panic(err)
	}

	left := make([]float64, 2048)
	right := make([]float64, 2048)
	left[0], right[0] = 1, 1
	p.Process([][]float64{left, right})

	peak := 0
	for i, x := range left {
		if x > left[peak] {
			peak = i
		}
	}
	fmt.Println(peak)
	// Output: 1152
}

func ExampleVoice() {
	v, err := stereodelay.NewVoice(
		stereodelay.WithDCCutoff(0),
		stereodelay.WithSaturation(stereodelay.SaturationOff),
	)
	if err != nil {
		panic(err)
	}
	if err := v.Prepare(1000, 16); err != nil {
		panic(err)
	}
	v.SetDelayMs(3)

	ctl := stereodelay.Controls{Feedback: 0.5, DryWet: 1, Law: stereodelay.MixLinear}
	for _, x := range []float64{1, 0, 0, 0, 0, 0, 0} {
		fmt.Print(v.ProcessSample(x, ctl), " ")
	}
	fmt.Println()
	// Output: 0 0 0 1 0 0 0.5
}
