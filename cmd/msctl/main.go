// Command msctl is a small diagnostic CLI around the microserial core:
// it lists candidate devices and can echo a configured port to stdout
// for manual testing against real hardware.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/daedaluz/microserial/discovery"
	"github.com/daedaluz/microserial/internal/logging"
	"github.com/daedaluz/microserial/serial"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "list":
		runList(os.Args[2:])
	case "cat":
		runCat(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: msctl list")
	fmt.Fprintln(os.Stderr, "       msctl cat <device> --baud N")
}

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Parse(args)

	if *verbose {
		logging.SetLevel(logging.LevelDebug)
	}

	infos, err := discovery.Enumerate()
	if err != nil {
		logging.Error("enumerate failed: %v", err)
		os.Exit(1)
	}
	for _, info := range infos {
		fmt.Printf("%s\t%s\n", info.Path, info.Description)
	}
}

func runCat(args []string) {
	fs := flag.NewFlagSet("cat", flag.ExitOnError)
	baud := fs.Uint("baud", 115200, "baud rate")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Parse(args)
	// Flags may also follow the device path, as in the usage line.
	var positional []string
	for fs.NArg() > 0 {
		positional = append(positional, fs.Arg(0))
		fs.Parse(fs.Args()[1:])
	}

	if *verbose {
		logging.SetLevel(logging.LevelDebug)
	}

	if len(positional) < 1 {
		usage()
		os.Exit(2)
	}
	path := positional[0]

	port, err := serial.Open(path)
	if err != nil {
		logging.Error("open %s: %v", path, err)
		os.Exit(1)
	}
	defer port.Close()

	cfg := serial.DefaultConfig()
	cfg.BaudRate = uint32(*baud)
	if err := port.Configure(cfg); err != nil {
		logging.Error("configure %s: %v", path, err)
		os.Exit(1)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	cb := serial.Callbacks{
		OnData: func(data []byte) {
			out.Write(data)
			out.Flush()
		},
		OnEvent: func(code int, message string) {
			logging.Warn("event %d: %s", code, message)
		},
	}
	if err := port.Start(cb); err != nil {
		logging.Error("start %s: %v", path, err)
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	if err := port.Stop(); err != nil {
		logging.Error("stop %s: %v", path, err)
	}
}
