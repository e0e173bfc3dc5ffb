package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"reflect"
	"time"

	"github.com/spf13/cobra"

	"github.com/elioetibr/alacs/internal/logging"
	"github.com/elioetibr/alacs/internal/profile"
	"github.com/elioetibr/alacs/internal/randtree"
	"github.com/elioetibr/alacs/pkg/alacs"
	"github.com/elioetibr/alacs/pkg/yamlout"
)

var (
	flagLoops    int
	flagDeepest  int
	flagWidest   int
	flagLogLevel string
	flagLogFmt   string

	profileConfig profile.Config
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "alacs",
		Short:         "Exercise the ALACS engine against bounded random data",
		Long:          "Generates random ALACS trees and drives them through encode, decode, the plain-data bridge, and the YAML emitter, failing loudly on the first mismatch.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runExercise,
	}

	flags := cmd.Flags()
	flags.IntVar(&flagLoops, "loops", 250, "number of repetitions (0 skips the exercise loop)")
	flags.IntVar(&flagDeepest, "deepest", 6, "limit the depth of generated random data structures")
	flags.IntVar(&flagWidest, "widest", 8, "limit the breadth of generated random data structures")
	flags.StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&flagLogFmt, "log-format", "text", "log format: text, json")
	profileConfig.RegisterFlags(flags)

	return cmd
}

// timer accumulates a running average of call durations, mirroring the
// reference implementation's perf_counter_ns-based Timer.
type timer struct {
	total time.Duration
	count int
}

func (t *timer) observe(d time.Duration) {
	t.total += d
	t.count++
}

func (t *timer) avg() time.Duration {
	if t.count == 0 {
		return 0
	}
	return t.total / time.Duration(t.count)
}

func failed(format string, args ...any) error {
	return fmt.Errorf("FAILED "+format, args...)
}

func runExercise(cmd *cobra.Command, _ []string) error {
	if flagLoops < 0 || flagDeepest < 0 || flagWidest < 0 {
		return failed("loops, deepest, and widest must each be >= 0")
	}

	handler, err := logging.NewHandlerFromStrings(cmd.OutOrStderr(), flagLogLevel, flagLogFmt)
	if err != nil {
		return err
	}
	logger := slog.New(handler)

	profiler := profileConfig.NewProfiler()
	if err := profiler.Start(); err != nil {
		return err
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			logger.Warn("stopping profiler", "error", err)
		}
	}()

	if flagWidest == 0 || flagDeepest == 0 {
		return failed("deepest and widest must each be >= 1")
	}
	if flagLoops == 0 {
		logger.Info("loops is 0, nothing to exercise")
		return nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	gen := randtree.NewGenerator(rng, flagDeepest, flagWidest)
	engine := alacs.NewEngine()
	yamlEnc := yamlout.NewEncoder()

	var encodeTimer, decodeTimer, toPlainTimer, fromPlainTimer timer

	for i := 0; i < flagLoops; i++ {
		tree := gen.File()

		start := time.Now()
		encoded, err := engine.Encode(tree)
		encodeTimer.observe(time.Since(start))
		if err != nil {
			return failed("encode: %v", err)
		}
		buf := append([]byte(nil), encoded...)

		start = time.Now()
		decoded, err := engine.Decode(buf)
		decodeTimer.observe(time.Since(start))
		if err != nil {
			return failed("encode then decode: %v", err)
		}
		if !treesEqual(tree, decoded) {
			return failed("encode then decode: trees differ")
		}

		start = time.Now()
		plain, err := engine.ToPlain(tree)
		toPlainTimer.observe(time.Since(start))
		if err != nil {
			return failed("to_plain: %v", err)
		}

		start = time.Now()
		lifted, err := engine.FromPlain(plain)
		fromPlainTimer.observe(time.Since(start))
		if err != nil {
			return failed("from_plain: %v", err)
		}
		roundTripped, err := engine.ToPlain(lifted)
		if err != nil {
			return failed("to_plain: %v", err)
		}
		if !reflect.DeepEqual(plain, roundTripped) {
			return failed("to plain and back")
		}

		yamlEnc.Encode(tree) // exercises the YAML emitter against the same trees.

		if flagLoops >= 10 && i%(flagLoops/10) == 0 {
			logger.Info("progress", "loop", i, "of", flagLoops)
		}
	}

	logger.Info("timers",
		"encode_avg", encodeTimer.avg(),
		"decode_avg", decodeTimer.avg(),
		"to_plain_avg", toPlainTimer.avg(),
		"from_plain_avg", fromPlainTimer.avg(),
	)
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
