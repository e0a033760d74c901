package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/inovacc/brotli"
)

var cli struct {
	Output string `help:"Write decompressed output to this file instead of stdout." short:"o" type:"path"`
	Check  string `help:"Compare the decompressed output against this file instead of writing it." short:"c" type:"path"`
	Debug  bool   `help:"Enable debug logging."`
	File   string `arg:"" help:"Compressed input file." type:"path"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("unbr"),
		kong.Description("Decompress a raw brotli stream using the reference decoder."))

	if cli.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	os.Exit(run(afero.NewOsFs(), os.Stdout))
}

func run(fs afero.Fs, stdout *os.File) int {
	data, err := afero.ReadFile(fs, cli.File)
	if err != nil {
		logrus.Errorf("read %s: %s", cli.File, err)
		return 1
	}
	logrus.Debugf("%d compressed bytes", len(data))

	if cli.Check != "" {
		expected, err := afero.ReadFile(fs, cli.Check)
		if err != nil {
			logrus.Errorf("read %s: %s", cli.Check, err)
			return 1
		}
		n, err := brotli.Verify(data, expected)
		if err != nil {
			logrus.Errorf("verify %s: %s", cli.File, err)
			return exitCode(err)
		}
		warnTrailing(data, n)
		logrus.Infof("%s matches %s", cli.File, cli.Check)
		return 0
	}

	out, n, err := brotli.Decode(data)
	if err != nil {
		logrus.Errorf("decode %s: %s", cli.File, err)
		return exitCode(err)
	}
	warnTrailing(data, n)
	logrus.Debugf("%d bytes decompressed", len(out))

	if cli.Output != "" {
		if err := afero.WriteFile(fs, cli.Output, out, 0644); err != nil {
			logrus.Errorf("write %s: %s", cli.Output, err)
			return 1
		}
		return 0
	}
	if _, err := stdout.Write(out); err != nil {
		logrus.Errorf("write output: %s", err)
		return 1
	}
	return 0
}

func warnTrailing(data []byte, n int) {
	if n < len(data) {
		logrus.Warnf("%d trailing bytes after the brotli stream", len(data)-n)
	}
}

// exitCode maps each decoder error kind to a distinct exit code.
func exitCode(err error) int {
	switch {
	case errors.Is(err, brotli.ErrPrematureEOF):
		return 2
	case errors.Is(err, brotli.ErrInvalid):
		return 3
	case errors.Is(err, brotli.ErrMismatch):
		return 4
	case errors.Is(err, brotli.ErrOutOfMemory):
		return 5
	}
	return 1
}
