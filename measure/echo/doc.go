// Package echo measures the echo train of a feedback delay from its impulse
// response.
//
// An [Analyzer] locates the echo peaks at multiples of the delay time,
// reports their levels and estimates how many echoes (and how long) it takes
// for the train to fall 60 dB below the first echo. [MagnitudeResponse]
// returns the FFT magnitude of an impulse response, which for a feedback
// delay shows the comb-filter peaks and the DC blocker's low cut.
//
// # Usage
//
//	irData := echo.ImpulseResponse(voice.ProcessBlock, 48000, 512)
//	res, err := echo.NewAnalyzer(48000, 1152).Analyze(irData)
//	fmt.Printf("%d echoes, %.1f dB/echo\n", len(res.Echoes), res.DecayDB)
package echo
