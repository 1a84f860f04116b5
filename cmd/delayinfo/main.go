// Command delayinfo prints the echo train, decay and loop spectrum of the
// feedback delay for one parameter set, computed offline from its impulse
// response.
//
// Usage:
//
//	delayinfo [flags]
//
// Examples:
//
//	delayinfo -delay 24 -feedback 0.5
//	delayinfo -delay 250 -feedback 0.9 -saturation off -seconds 10
//	delayinfo -fft 65536 -bands 20
//	delayinfo -cpu
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-delay/dsp/core"
	"github.com/cwbudde/algo-delay/dsp/effects/stereodelay"
	"github.com/cwbudde/algo-delay/dsp/interp"
)

func main() {
	cfg := defaultReportConfig()
	var satName, interpName string

	rate := flag.Float64("rate", cfg.Processor.SampleRate, "sample rate in Hz")
	block := flag.Int("block", cfg.Processor.BlockSize, "processing block size")
	maxDelay := flag.Float64("maxdelay", cfg.Processor.MaxDelaySeconds, "longest delay the line is sized for, in seconds")
	flag.Float64Var(&cfg.DelayMs, "delay", cfg.DelayMs, "delay time in ms")
	flag.Float64Var(&cfg.Feedback, "feedback", cfg.Feedback, "feedback amount (0.01..1)")
	flag.Float64Var(&cfg.DryWet, "drywet", cfg.DryWet, "dry/wet mix (0.01..1)")
	flag.Float64Var(&cfg.DCCutoff, "dc", cfg.DCCutoff, "feedback high-pass cutoff in Hz (0 = off)")
	flag.StringVar(&satName, "saturation", "tanh", "feedback saturation: tanh or off")
	flag.StringVar(&interpName, "interp", "linear", "interpolation: linear or hermite")
	flag.Float64Var(&cfg.Seconds, "seconds", cfg.Seconds, "impulse response length in seconds")
	flag.IntVar(&cfg.FFTSize, "fft", cfg.FFTSize, "FFT size for the spectrum (power of two)")
	flag.IntVar(&cfg.Bands, "bands", cfg.Bands, "number of log-spaced spectrum rows (0 = none)")
	flag.IntVar(&cfg.MaxEchoes, "echoes", cfg.MaxEchoes, "maximum echo rows to print")
	showCPU := flag.Bool("cpu", false, "print detected SIMD features")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: delayinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints echo timing, decay and loop spectrum of the stereo delay.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  delayinfo -delay 24 -feedback 0.5\n")
		fmt.Fprintf(os.Stderr, "  delayinfo -delay 250 -feedback 0.9 -saturation off -seconds 10\n")
		fmt.Fprintf(os.Stderr, "  delayinfo -cpu\n")
	}
	flag.Parse()

	var err error
	if cfg.Processor, err = core.NewProcessorConfig(*rate, *block, *maxDelay); err != nil {
		die(err)
	}
	if cfg.Saturation, err = stereodelay.ParseSaturation(satName); err != nil {
		die(err)
	}
	if cfg.Interpolation, err = interp.ParseMode(interpName); err != nil {
		die(err)
	}

	if *showCPU {
		printCPU(os.Stdout)
		fmt.Println()
	}

	rep, err := buildReport(cfg)
	if err != nil {
		die(err)
	}
	printReport(os.Stdout, cfg, rep)
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
