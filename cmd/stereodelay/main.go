// Command stereodelay plays a test signal through the stereo feedback delay
// and lets you tweak it from the keyboard while watching the level meters.
//
// Usage:
//
//	stereodelay [flags]
//
// Keys:
//
//	[ ]  left delay time      { }  right delay time
//	- =  feedback             , .  dry/wet
//	l    link right to left   m    next mix law
//	r    reset                q    quit
//
// Examples:
//
//	stereodelay
//	stereodelay -source burst -left 350 -right 525 -feedback 0.6
//	stereodelay -saturation off -interp hermite -duration 10s
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cwbudde/algo-delay/dsp/core"
	"github.com/cwbudde/algo-delay/dsp/effects/stereodelay"
	"github.com/cwbudde/algo-delay/dsp/interp"
	"github.com/cwbudde/algo-delay/dsp/param"
	"github.com/cwbudde/algo-delay/internal/live"
)

const meterRate = 24 // UI refreshes per second

func main() {
	defaults := core.DefaultProcessorConfig()
	rate := flag.Int("rate", int(defaults.SampleRate), "sample rate in Hz")
	block := flag.Int("block", defaults.BlockSize, "maximum processing block size")
	maxDelay := flag.Float64("maxdelay", defaults.MaxDelaySeconds, "longest delay the lines are sized for, in seconds")
	buffer := flag.Duration("buffer", 40*time.Millisecond, "audio device buffer")
	sourceName := flag.String("source", "click", "test signal: "+strings.Join(live.SourceNames(), ", "))
	left := flag.Float64("left", param.DefaultDelayMs, "left delay time in ms")
	right := flag.Float64("right", param.DefaultDelayMs, "right delay time in ms")
	feedback := flag.Float64("feedback", param.DefaultFeedback, "feedback amount (0.01..1)")
	dryWet := flag.Float64("drywet", param.DefaultDryWet, "dry/wet mix (0.01..1)")
	link := flag.Bool("link", false, "right delay follows left")
	mixLaw := flag.String("mix", param.MixLawOptions[0], "mix law: "+strings.Join(param.MixLawOptions, ", "))
	satName := flag.String("saturation", "tanh", "feedback saturation: tanh or off")
	interpName := flag.String("interp", "linear", "interpolation: linear or hermite")
	duration := flag.Duration("duration", 0, "stop after this long (0 = until q)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: stereodelay [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays a test signal through the stereo delay.\n")
		fmt.Fprintf(os.Stderr, "Keys: %s\n\n", live.Help())
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := core.NewProcessorConfig(float64(*rate), *block, *maxDelay)
	if err != nil {
		die(err)
	}

	params := param.NewSet()
	params.FreqLeft.Set(*left)
	params.FreqRight.Set(*right)
	params.Feedback.Set(*feedback)
	params.DryWet.Set(*dryWet)
	params.Link.Set(*link)
	if err := params.MixLaw.SetName(*mixLaw); err != nil {
		die(err)
	}

	sat, err := stereodelay.ParseSaturation(*satName)
	if err != nil {
		die(err)
	}
	mode, err := interp.ParseMode(*interpName)
	if err != nil {
		die(err)
	}

	proc, err := stereodelay.New(params,
		stereodelay.WithSaturation(sat),
		stereodelay.WithInterpolation(mode),
		stereodelay.WithMaxDelay(cfg.MaxDelaySeconds),
	)
	if err != nil {
		die(err)
	}
	if err := proc.Prepare(cfg.SampleRate, cfg.BlockSize); err != nil {
		die(err)
	}
	defer proc.Release()

	src, err := live.NewSource(*sourceName, cfg.SampleRate)
	if err != nil {
		die(err)
	}
	stream, err := live.NewStream(src, proc)
	if err != nil {
		die(err)
	}

	player, err := live.NewPlayer(*rate, *buffer, stream)
	if err != nil {
		die(err)
	}
	defer player.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	var keys <-chan byte
	if t, err := live.OpenTerminal(os.Stdin); err == nil {
		defer t.Close()
		keys = t.Keys(ctx)
	} else {
		fmt.Fprintf(os.Stderr, "keyboard control disabled: %v\n", err)
	}

	player.Start()
	run(ctx, proc, params, keys)
}

// run redraws the meters until ctx ends or the quit key is pressed.
func run(ctx context.Context, proc *stereodelay.Processor, params *param.Set, keys <-chan byte) {
	control := live.NewControl(params)
	view := live.NewMeterView(40)
	ticker := time.NewTicker(time.Second / meterRate)
	defer ticker.Stop()

	// Raw mode disables the newline translation, so lines end in \r\n.
	fmt.Print(live.Help() + "\r\n")
	for {
		select {
		case <-ctx.Done():
			fmt.Print("\r\n")
			return
		case k, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			if control.HandleKey(k) == live.ActionQuit {
				fmt.Print("\r\n")
				return
			}
		case <-ticker.C:
			frame := live.Status(params) + "\n" + view.Render(proc.Levels())
			// Move up over the previous frame and redraw it.
			fmt.Print("\x1b[J" + strings.ReplaceAll(frame, "\n", "\x1b[K\r\n") + "\x1b[5A")
		}
	}
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
