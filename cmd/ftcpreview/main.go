package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Init    InitCommand    `command:"init" description:"Create a preview config from a built-in page preset"`
	Preview PreviewCommand `command:"preview" alias:"play" description:"Play the movement sequence in the terminal"`
	Trace   TraceCommand   `command:"trace" description:"Print a deterministic frame-by-frame pose trace"`
	Serve   ServeCommand   `command:"serve" description:"Serve preview playback over HTTP"`
	Scan    ScanCommand    `command:"scan" description:"Scan serial ports for servos and add them to the hardware list"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "ftcpreview - robot preview playback for the FTC programming guide"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
