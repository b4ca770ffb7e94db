// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/lassandro/lc3vm/pkg/machine"
	"github.com/lassandro/lc3vm/pkg/terminal"
	"github.com/lassandro/lc3vm/pkg/trace"
	"github.com/lassandro/lc3vm/pkg/translate"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
	exitAbort = 134
	usage     = "lc3 [-trace] [-watch [r:|w:]ADDR]... image-file"
)

var f = translate.From

type options struct {
	help  bool
	trace bool
	level string
	watch watchList
}

// watchList collects repeated -watch flags.
type watchList []trace.Watchpoint

func (wl *watchList) String() string {
	return fmt.Sprint(len(*wl))
}

func (wl *watchList) Set(s string) error {
	wp, err := trace.ParseWatchpoint(s)
	if err != nil {
		return err
	}

	*wl = append(*wl, wp)
	return nil
}

func init() {
	exe, _ := os.Executable()
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	logrus.AddHook(&prefixHook{name: filepath.Base(exe)})
}

func newFlagSet(opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("lc3", flag.ContinueOnError)

	fs.BoolVar(&opts.help, "help", false, "Displays command usage")
	fs.BoolVar(&opts.trace, "trace", false, "Logs every executed instruction")
	fs.StringVar(&opts.level, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.Var(&opts.watch, "watch", "Logs accesses to a hex address, prefixed r: or w: to filter")

	return fs
}

// prefixHook tags every entry with the executable name.
type prefixHook struct {
	name string
}

func (h *prefixHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *prefixHook) Fire(entry *logrus.Entry) error {
	entry.Data["cmd"] = h.name
	return nil
}

// run executes the image named in args with stdin as the keyboard and
// stdout as the display. No instruction executes unless the image loads.
func run(ctx context.Context, args []string, stdin *os.File, stdout io.Writer) int {
	var opts options

	fs := newFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if opts.help {
		fmt.Fprintln(stdout, usage)
		return exitOK
	}

	level, err := logrus.ParseLevel(opts.level)
	if err != nil {
		logrus.Error(err)
		return exitUsage
	}

	if opts.trace {
		level = logrus.DebugLevel
	}

	logrus.SetLevel(level)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, usage)
		return exitUsage
	}

	image := fs.Arg(0)

	file, err := os.Open(image)
	if err != nil {
		logrus.Error(f("failed to load image file: %v", err))
		return exitError
	}

	defer file.Close()

	var mc machine.Machine

	if err := mc.LoadBin(file); err != nil {
		logrus.WithField("image", image).Error(f("failed to load image file: %v", err))
		return exitError
	}

	display := bufio.NewWriter(stdout)
	defer display.Flush()

	if terminal.IsTerminal(stdin.Fd()) {
		state, err := terminal.EnterRaw(stdin.Fd())
		if err != nil {
			logrus.Error(err)
			return exitError
		}

		defer func() {
			if err := state.Restore(); err != nil {
				logrus.Error(err)
			}
		}()
	}

	// Pipes and files are polled the same way as a terminal, so neither
	// a KBSR poll nor an interrupt waits on a silent stream.
	mc.Devices = &machine.DeviceHandler{
		Keyboard: terminal.NewKeyboard(ctx, stdin),
		Display:  display,
	}

	if opts.trace || len(opts.watch) > 0 {
		mc.Tracer = &trace.Tracer{
			Steps:       opts.trace,
			Watchpoints: opts.watch,
		}
	}

	return report(mc.Run(ctx), display)
}

// report maps the outcome of a run to an exit code.
func report(err error, display *bufio.Writer) int {
	var unknown *machine.ErrUnknownOpcode

	switch {
	case err == nil:
		return exitOK

	case errors.Is(err, context.Canceled):
		display.WriteString("\n" + f("Interrupted") + "\n")
		return exitError

	case errors.As(err, &unknown):
		display.WriteString(unknown.Error() + "\n")
		return exitOK

	case errors.Is(err, machine.ErrReservedOpcode):
		logrus.Error(err)
		return exitAbort
	}

	logrus.Error(err)
	return exitError
}

func lc3() int {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	return run(ctx, os.Args[1:], os.Stdin, os.Stdout)
}

func main() {
	os.Exit(lc3())
}
