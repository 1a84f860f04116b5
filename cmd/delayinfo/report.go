package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-delay/dsp/core"
	"github.com/cwbudde/algo-delay/dsp/effects/stereodelay"
	"github.com/cwbudde/algo-delay/dsp/filter/dcblock"
	"github.com/cwbudde/algo-delay/dsp/interp"
	"github.com/cwbudde/algo-delay/dsp/param"
	"github.com/cwbudde/algo-delay/measure/echo"
)

type reportConfig struct {
	Processor     core.ProcessorConfig
	DelayMs       float64
	Feedback      float64
	DryWet        float64
	DCCutoff      float64
	Saturation    stereodelay.Saturation
	Interpolation interp.Mode
	Seconds       float64
	FFTSize       int
	Bands         int
	MaxEchoes     int
}

func defaultReportConfig() reportConfig {
	return reportConfig{
		Processor:     core.ApplyProcessorOptions(),
		DelayMs:       param.DefaultDelayMs,
		Feedback:      param.DefaultFeedback,
		DryWet:        param.MaxDryWet,
		DCCutoff:      dcblock.DefaultCutoffHz,
		Saturation:    stereodelay.SaturationTanh,
		Interpolation: interp.Linear,
		Seconds:       2,
		FFTSize:       16384,
		Bands:         12,
		MaxEchoes:     24,
	}
}

type band struct {
	FreqHz float64
	DB     float64
}

type report struct {
	Params       *param.Set
	DelaySamples float64
	TailSeconds  float64
	Echo         echo.Result
	Spectrum     []band
}

// buildReport runs a mono processor over a unit impulse and analyses the
// result.
func buildReport(cfg reportConfig) (report, error) {
	pc := cfg.Processor
	if cfg.DelayMs > 1000*pc.MaxDelaySeconds {
		return report{}, fmt.Errorf("delay %g ms exceeds max delay %g s", cfg.DelayMs, pc.MaxDelaySeconds)
	}

	params := param.NewSet()
	params.FreqLeft.Set(cfg.DelayMs)
	params.Feedback.Set(cfg.Feedback)
	params.DryWet.Set(cfg.DryWet)

	proc, err := stereodelay.New(params,
		stereodelay.WithChannels(1),
		stereodelay.WithMaxDelay(pc.MaxDelaySeconds),
		stereodelay.WithDCCutoff(cfg.DCCutoff),
		stereodelay.WithSaturation(cfg.Saturation),
		stereodelay.WithInterpolation(cfg.Interpolation),
	)
	if err != nil {
		return report{}, err
	}
	if err := proc.Prepare(pc.SampleRate, pc.BlockSize); err != nil {
		return report{}, err
	}

	n := int(math.Ceil(cfg.Seconds * pc.SampleRate))
	chunk := make([][]float64, 1)
	ir := echo.ImpulseResponse(func(buf []float64) {
		chunk[0] = buf
		proc.Process(chunk)
	}, n, pc.BlockSize)
	if len(ir) == 0 {
		return report{}, fmt.Errorf("impulse response length must be > 0: %g s", cfg.Seconds)
	}

	delaySamples := core.MsToSamples(params.DelayMs(0), pc.SampleRate)
	res, err := echo.NewAnalyzer(pc.SampleRate, delaySamples).Analyze(ir)
	if err != nil {
		return report{}, err
	}

	rep := report{
		Params:       params,
		DelaySamples: delaySamples,
		TailSeconds:  proc.TailSeconds(),
		Echo:         res,
	}

	if cfg.Bands > 0 {
		mag, err := echo.MagnitudeResponse(ir, cfg.FFTSize)
		if err != nil {
			return report{}, err
		}
		rep.Spectrum = logBands(mag, cfg.FFTSize, pc.SampleRate, cfg.Bands)
	}
	return rep, nil
}

// logBands picks the peak magnitude in each of count log-spaced bands from
// 20 Hz to Nyquist.
func logBands(mag []float64, fftSize int, sampleRate float64, count int) []band {
	lo, hi := 20.0, sampleRate/2
	ratio := math.Pow(hi/lo, 1/float64(count))
	bands := make([]band, 0, count)

	f0 := lo
	for range count {
		f1 := f0 * ratio
		k0 := max(1, int(math.Floor(f0*float64(fftSize)/sampleRate)))
		k1 := min(len(mag)-1, int(math.Ceil(f1*float64(fftSize)/sampleRate)))
		peak := 0.0
		for k := k0; k <= k1; k++ {
			peak = max(peak, mag[k])
		}
		bands = append(bands, band{
			FreqHz: math.Sqrt(f0 * f1),
			DB:     core.FloorDB(core.LinearToDB(peak), -200),
		})
		f0 = f1
	}
	return bands
}

func printReport(w io.Writer, cfg reportConfig, rep report) {
	p := rep.Params
	fmt.Fprintf(w, "delay %s (%.2f samples)  feedback %s  dry/wet %s\n",
		p.FreqLeft, rep.DelaySamples, p.Feedback, p.DryWet)
	fmt.Fprintf(w, "rate %g Hz  block %d  max delay %g s\n", cfg.Processor.SampleRate, cfg.Processor.BlockSize, cfg.Processor.MaxDelaySeconds)
	fmt.Fprintf(w, "saturation %s  interpolation %s  dc cutoff %g Hz\n\n",
		cfg.Saturation, cfg.Interpolation, cfg.DCCutoff)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ECHO\tINDEX\tTIME (ms)\tLEVEL (dB)\tSTEP (dB)")
	fmt.Fprintln(tw, "----\t-----\t---------\t----------\t---------")
	for k, e := range rep.Echo.Echoes {
		if cfg.MaxEchoes > 0 && k >= cfg.MaxEchoes {
			fmt.Fprintf(tw, "...\t\t\t\t\n")
			break
		}
		step := "-"
		if k > 0 {
			step = fmt.Sprintf("%.2f", e.DB-rep.Echo.Echoes[k-1].DB)
		}
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.2f\t%s\n",
			k+1, e.Index, 1000*float64(e.Index)/cfg.Processor.SampleRate, e.DB, step)
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "echoes found:    %d\n", len(rep.Echo.Echoes))
	fmt.Fprintf(w, "mean decay:      %.2f dB/echo\n", rep.Echo.DecayDB)
	switch {
	case rep.Echo.EchoesTo60 < 0:
		fmt.Fprintf(w, "to -60 dB:       never (sustained)\n")
	case rep.Echo.Measured:
		fmt.Fprintf(w, "to -60 dB:       %d echoes, %.3f s (measured)\n", rep.Echo.EchoesTo60, rep.Echo.TimeTo60)
	default:
		fmt.Fprintf(w, "to -60 dB:       %d echoes, %.3f s (extrapolated)\n", rep.Echo.EchoesTo60, rep.Echo.TimeTo60)
	}
	fmt.Fprintf(w, "tail estimate:   %.3f s\n", rep.TailSeconds)
	fmt.Fprintf(w, "monotonic decay: %v\n", rep.Echo.Monotonic())

	if len(rep.Spectrum) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BAND (Hz)\tPEAK (dB)")
	fmt.Fprintln(tw, "---------\t---------")
	for _, b := range rep.Spectrum {
		fmt.Fprintf(tw, "%.0f\t%.2f\n", b.FreqHz, b.DB)
	}
	tw.Flush()
}

func printCPU(w io.Writer) {
	f := cpu.DetectFeatures()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "architecture\t%s\n", f.Architecture)
	fmt.Fprintf(tw, "best SIMD level\t%s\n", bestSIMD(f))
	fmt.Fprintf(tw, "SSE2/AVX/AVX2/AVX-512\t%v/%v/%v/%v\n", f.HasSSE2, f.HasAVX, f.HasAVX2, f.HasAVX512)
	fmt.Fprintf(tw, "NEON\t%v\n", f.HasNEON)
	tw.Flush()
}

func bestSIMD(f cpu.Features) cpu.SIMDLevel {
	for _, level := range []cpu.SIMDLevel{cpu.SIMDAVX512, cpu.SIMDAVX2, cpu.SIMDAVX, cpu.SIMDSSE2, cpu.SIMDNEON} {
		if cpu.Supports(f, level) {
			return level
		}
	}
	return cpu.SIMDNone
}
