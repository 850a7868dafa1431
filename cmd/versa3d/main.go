//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"sync"

	"github.com/spf13/pflag"

	"github.com/msam/versa3d"
	_ "github.com/msam/versa3d/bmp"
	"github.com/msam/versa3d/profile"
	_ "github.com/msam/versa3d/uvj"
)

const (
	defaultCachedLayers = 64
)

var param struct {
	Verbose     int
	Quiet       bool
	Machine     string
	DPI         []int
	Thickness   []float64
	FillPattern string
	Profile     string
	Watch       bool
	Cells       int
	Progress    bool
}

func init() {
	pflag.CountVarP(&param.Verbose, "verbose", "v", "Increase logging detail (-vv for debug)")
	pflag.BoolVarP(&param.Quiet, "quiet", "q", false, "Only log errors")
	pflag.StringVarP(&param.Machine, "machine", "M", "default", "Printer and printhead preset")
	pflag.IntSliceVarP(&param.DPI, "dpi", "d", nil, "Printhead resolution, dots per inch (X,Y)")
	pflag.Float64SliceVarP(&param.Thickness, "layer-thickness", "t", []float64{0.1}, "Layer thickness in mm; the thinnest sets the Z pitch")
	pflag.StringVarP(&param.FillPattern, "fill-pattern", "f", "uniform", "Layer fill pattern")
	pflag.StringVarP(&param.Profile, "profile", "p", "", "YAML settings profile")
	pflag.BoolVarP(&param.Watch, "watch", "w", false, "Re-slice whenever the profile changes")
	pflag.IntVar(&param.Cells, "cells", 0, "Marching cubes resolution for primitive: inputs")
	pflag.BoolVarP(&param.Progress, "progress", "P", false, "Log slicing progress")

	pflag.CommandLine.SetInterspersed(false)
}

type Verb struct {
	NewVerb     func() Verber
	Description string
}

type Verber interface {
	Parse(args []string) error
	Args() []string
	PrintDefaults()
	Filter(input versa3d.Printable) (output versa3d.Printable, err error)
}

var VerbMap = map[string]Verb{
	"info": {
		NewVerb:     func() Verber { return NewInfoCommand() },
		Description: "Dumps information about the sliced volume",
	},
	"decimate": {
		NewVerb:     func() Verber { return NewDecimateCommand() },
		Description: "Erode layers to compensate for binder bleed",
	},
	"select": {
		NewVerb:     func() Verber { return NewSelectCommand() },
		Description: "Select a range of layers",
	},
	"bed": {
		NewVerb:     func() Verber { return NewBedCommand() },
		Description: "Re-bed layers onto a machine raster",
	},
	"check": {
		NewVerb:     func() Verber { return NewCheckCommand() },
		Description: "Check that the part fits the build bed",
	},
}

func Usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  versa3d [options] INFILE [command [options] | OUTFILE]...")
	fmt.Fprintln(os.Stderr, "  versa3d [options] @cmdfile.txt")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "INFILE is an .stl mesh, a primitive such as 'primitive:box:10,10,5',")
	fmt.Fprintln(os.Stderr, "or an already sliced layer file.")
	fmt.Fprintln(os.Stderr)
	pflag.PrintDefaults()
	fmt.Fprintln(os.Stderr)

	keys := []string{}
	for key := range VerbMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr)
	for _, key := range keys {
		fmt.Fprintf(os.Stderr, "  %-20s %s\n", key, VerbMap[key].Description)
	}

	for _, key := range keys {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "Options for '%s':\n", key)
		fmt.Fprintln(os.Stderr)
		VerbMap[key].NewVerb().PrintDefaults()
	}

	versa3d.FormatterUsage()

	fmt.Fprintln(os.Stderr)
	PrintMachines()
}

// LevelFromFlags maps the verbosity flags to a log level
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Pipeline runs the commands and outputs of one invocation against a
// freshly sliced input.
type Pipeline struct {
	Source *Source
	Stage  *versa3d.Stage
	Args   []string

	// Serializes output writes between overlapping runs
	outputMu sync.Mutex

	printerMu sync.Mutex
	printer   versa3d.Settings
}

// SetPrinter records the printer settings handed to printer aware commands
func (pl *Pipeline) SetPrinter(printer versa3d.Settings) {
	pl.printerMu.Lock()
	defer pl.printerMu.Unlock()

	pl.printer = printer
}

func (pl *Pipeline) Printer() versa3d.Settings {
	pl.printerMu.Lock()
	defer pl.printerMu.Unlock()

	return pl.printer
}

// PrinterAware commands consume the printer settings domain
type PrinterAware interface {
	SetPrinter(printer versa3d.Settings)
}

// Run slices the source and applies every command and output in order
func (pl *Pipeline) Run(ctx context.Context) (err error) {
	input, err := pl.Source.Printable(ctx, pl.Stage)
	if err != nil {
		return
	}

	pl.outputMu.Lock()
	defer pl.outputMu.Unlock()

	input = versa3d.NewCachedPrintable(input, defaultCachedLayers)

	args := pl.Args
	for len(args) > 0 {
		verb, isVerb := VerbMap[args[0]]
		if isVerb {
			filter := verb.NewVerb()
			err = filter.Parse(args[1:])
			if err != nil {
				return
			}

			if pa, ok := filter.(PrinterAware); ok {
				pa.SetPrinter(pl.Printer())
			}

			input, err = filter.Filter(input)
			if err != nil {
				err = fmt.Errorf("%s: %w", args[0], err)
				return
			}

			args = filter.Args()
			continue
		}

		var format *versa3d.Format
		format, err = versa3d.NewFormat(args[0], args[1:])
		if err != nil {
			return
		}

		slog.Info("writing", "file", args[0])
		err = format.SetPrintable(input)
		if err != nil {
			return
		}

		args = format.Args()
	}

	return
}

func evaluate(ctx context.Context, args []string) (err error) {
	if len(args) == 0 {
		err = errors.New("no input specified")
		return
	}

	var progressor versa3d.Progressor
	if param.Progress {
		progressor = NewLogProgress(args[0])
	}

	stage := versa3d.NewStage(versa3d.WithProgress(progressor))
	stage.OnModified(func(state versa3d.State) {
		slog.Debug("stage", "state", state)
	})

	var prof *profile.Profile
	if param.Profile != "" {
		prof, err = profile.Load(param.Profile)
		if err != nil {
			return
		}
	}

	printer, err := applyProfile(stage, prof)
	if err != nil {
		return
	}

	source, err := NewSource(args[0], param.Cells)
	if err != nil {
		return
	}

	pl := &Pipeline{
		Source: source,
		Stage:  stage,
		Args:   args[1:],
	}
	pl.SetPrinter(printer)

	err = pl.Run(ctx)
	if err != nil || !param.Watch {
		return
	}

	if param.Profile == "" {
		err = errors.New("--watch needs a --profile to watch")
		return
	}

	slog.Warn("watching profile", "path", param.Profile)

	var wg sync.WaitGroup
	err = profile.Watch(ctx, param.Profile, func(prof *profile.Profile, err error) {
		if err != nil {
			slog.Error("profile reload", "error", err)
			return
		}

		printer, err := applyProfile(stage, prof)
		if err != nil {
			slog.Error("profile apply", "error", err)
			return
		}
		pl.SetPrinter(printer)

		// A newer change supersedes this run
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pl.Run(ctx)
			switch {
			case errors.Is(err, versa3d.ErrSuperseded):
				slog.Info("re-slice superseded")
			case errors.Is(err, context.Canceled):
			case err != nil:
				slog.Error("re-slice", "error", err)
			default:
				slog.Warn("re-sliced", "path", param.Profile)
			}
		}()
	})

	wg.Wait()

	return
}

func main() {
	pflag.Usage = Usage
	pflag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: LevelFromFlags(param.Verbose > 1, param.Verbose == 1, param.Quiet),
	})))
	versa3d.SetLogger(slog.Default())

	args, err := ExpandArgs(pflag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if len(args) == 0 {
		Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = evaluate(ctx, args)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		var unknown versa3d.ErrUnknownFillPattern
		var invalid versa3d.ErrSettingInvalid
		if errors.As(err, &unknown) || (errors.As(err, &invalid) && string(invalid) == versa3d.KeyFillPattern) {
			fmt.Fprintf(os.Stderr, "Known fill patterns: %v\n", versa3d.FillUniform)
		}
		stop()
		os.Exit(1)
	}
}
