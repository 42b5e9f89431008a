package main

import (
	"flag"
	"io"

	"github.com/pkg/errors"
)

type Cli struct {
	Signature bool   // -signature
	InFile    string // -infile
	OutFile   string // -outfile
	Delta     bool   // -delta
	SigFile   string // -sigfile
	NewData   string // -newdata
	Config    string // -config
	Init      bool   // -init
}

/*
Usage: filediff -signature -infile FILE [-outfile SIG]
  or   filediff -delta -sigfile SIG -newdata FILE [-outfile DELTA]
  or   filediff -init [-config PATH]
*/
func ParseArgs(args []string, output io.Writer) (*Cli, error) {
	cli := &Cli{}

	fs := flag.NewFlagSet("filediff", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&cli.Signature, "signature", false, "produce signature for given file")
	fs.StringVar(&cli.InFile, "infile", "", "input file for which signature shall be calculated")
	fs.StringVar(&cli.OutFile, "outfile", "", "output file to which signature or delta shall be stored, stdout if empty")
	fs.BoolVar(&cli.Delta, "delta", false, "calculates delta based on given sigfile and newdata files")
	fs.StringVar(&cli.SigFile, "sigfile", "", "signature file calculated for base data file")
	fs.StringVar(&cli.NewData, "newdata", "", "data file to be compared")
	fs.StringVar(&cli.Config, "config", "", "path of the config file, ./config.toml if empty")
	fs.BoolVar(&cli.Init, "init", false, "write a sample config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch {
	case cli.Init:
	case cli.Signature && cli.Delta:
		return nil, errors.New("signature and delta should not be called at once")
	case cli.Signature:
		if cli.InFile == "" {
			return nil, errors.New("-infile is required with -signature")
		}
	case cli.Delta:
		if cli.SigFile == "" {
			return nil, errors.New("-sigfile is required with -delta")
		}
		if cli.NewData == "" {
			return nil, errors.New("-newdata is required with -delta")
		}
	default:
		return nil, errors.New("one of -signature, -delta or -init is required")
	}
	return cli, nil
}
