// Package profile wires a single CPU-profile flag into a cobra/pflag CLI,
// the way profile.Config/Profiler pairs in the wider ecosystem do, scoped
// down to the one knob this CLI's contract exposes.
package profile

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/spf13/pflag"
)

// Config holds the CPU-profile output path. An empty path disables
// profiling entirely.
type Config struct {
	CPUProfile string
}

// RegisterFlags adds the --pstats flag to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPUProfile, "pstats", "", "write CPU profile stats here (fails if the file already exists)")
}

// NewProfiler creates a Profiler from this Config.
func (c *Config) NewProfiler() *Profiler {
	return &Profiler{Config: *c}
}

// Profiler controls one profiling session's lifecycle: Start, then Stop when
// the work it covers is done.
type Profiler struct {
	cpuFile *os.File
	Config
}

// Start refuses to overwrite an existing file at CPUProfile, then begins CPU
// profiling. A no-op if CPUProfile is empty.
func (p *Profiler) Start() error {
	if p.CPUProfile == "" {
		return nil
	}
	if _, err := os.Stat(p.CPUProfile); err == nil {
		return fmt.Errorf("won't overwrite: %s", p.CPUProfile)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking profile path: %w", err)
	}

	f, err := os.Create(p.CPUProfile) //nolint:gosec // path comes from a CLI flag.
	if err != nil {
		return fmt.Errorf("creating CPU profile: %w", err)
	}
	p.cpuFile = f

	if err := pprof.StartCPUProfile(f); err != nil {
		must(p.cpuFile.Close())
		p.cpuFile = nil
		return fmt.Errorf("starting CPU profile: %w", err)
	}
	return nil
}

// Stop stops CPU profiling and closes the profile file. A no-op if Start
// never opened one.
func (p *Profiler) Stop() error {
	if p.cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	if err := p.cpuFile.Close(); err != nil {
		return fmt.Errorf("closing CPU profile: %w", err)
	}
	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
