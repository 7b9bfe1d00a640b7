package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"

	"github.com/aryanA101a/lulu/translate"
	"github.com/aryanA101a/lulu/vm"
)

var f = translate.From

// process exit codes
const (
	exitOK        = 0
	exitLoad      = 1
	exitUsage     = 2
	exitFatal     = 3
	exitInterrupt = 130
)

type cli struct {
	Images  []string `arg:"" name:"image" type:"path" help:"Object images to load, in order."`
	Start   uint16   `default:"12288" help:"Initial program counter (default 0x3000)."`
	Verbose bool     `short:"v" env:"LULU_VERBOSE" help:"Trace every executed instruction."`
	LogFile string   `type:"path" env:"LULU_LOG_FILE" help:"Append logs to this file instead of stderr."`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin, stdout *os.File, stderr io.Writer) int {
	var opts cli
	parser, err := kong.New(&opts,
		kong.Name("lulu"),
		kong.Description(f("Run LC-3 object images.")),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		panic(err)
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintln(stderr, f("lulu: %v", err))
		return exitUsage
	}

	log := logrus.New()
	log.SetOutput(stderr)
	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if opts.LogFile != "" {
		logFile, err := os.OpenFile(opts.LogFile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o666)
		if err != nil {
			fmt.Fprintln(stderr, f("lulu: %v", err))
			return exitUsage
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	terminal := vm.NewTerminal(stdin, stdout)
	machine := vm.NewVM(terminal, terminal)
	machine.SetLogger(log)

	for _, path := range opts.Images {
		if err := machine.LoadFile(path); err != nil {
			fmt.Fprintln(stderr, f("lulu: failed to load image: %v", err))
			return exitLoad
		}
	}
	machine.SetPC(vm.Word(opts.Start))

	if err := terminal.EnableRawMode(); err != nil {
		log.WithError(err).Warn(f("raw mode unavailable"))
	}
	defer terminal.DisableRawMode()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// GETC and IN block on the terminal, so an interrupt cannot wait for Run
	// to notice the cancelled context.
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		<-ctx.Done()
		select {
		case <-finished:
			return
		default:
		}
		terminal.DisableRawMode()
		fmt.Fprintln(stdout)
		os.Exit(exitInterrupt)
	}()

	err = machine.Run(ctx)
	terminal.Flush()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupt
	}

	dump := pp.New()
	dump.SetColoringEnabled(false)
	log.WithError(err).WithField("state", dump.Sprint(machine.State())).Error(f("machine aborted"))
	return exitFatal
}
