// Command cachectl replays an operation script against an in-process NamedCache
// store, using the same calls and ownership rules as the shared library.
//
//	cachectl run -s ops.txt
//	echo 'create-map m' | cachectl run --json
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/jessevdk/go-flags"

	"github.com/VanDung-dev/NamedCache/bridge"
	"github.com/VanDung-dev/NamedCache/config"
)

// Version information
const (
	Version = "0.1.0"
	Name    = "cachectl"
)

// Options are the global command-line options.
type Options struct {
	Config string `short:"f" long:"config" description:"YAML config file (defaults to NAMEDCACHE_* environment)"`

	Run     RunCmd     `command:"run" description:"Execute an operation script"`
	Version VersionCmd `command:"version" description:"Print version"`
}

var opts Options

// RunCmd executes a script.
type RunCmd struct {
	Script string `short:"s" long:"script" default:"-" description:"Script file, '-' for stdin"`
	JSON   bool   `long:"json" description:"Print one JSON object per command"`
}

// Execute implements flags.Commander.
func (c *RunCmd) Execute(_ []string) error {
	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return err
	}
	if err := cfg.ApplyLogging(); err != nil {
		glog.Warningf("logging: %v", err)
	}
	// The CLI is short-lived; never serve metrics from it.
	cfg.Metrics.Enabled = false

	a, err := bridge.Open(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var r io.Reader = os.Stdin
	if c.Script != "-" {
		f, err := os.Open(c.Script)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	cmds, err := ParseScript(r)
	if err != nil {
		return err
	}
	return NewRunner(a).Run(cmds, os.Stdout, c.JSON)
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Execute implements flags.Commander.
func (c *VersionCmd) Execute(_ []string) error {
	fmt.Printf("%s v%s\n", Name, Version)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.FromEnv()
	}
	return config.Load(path)
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	_, err := parser.Parse()
	glog.Flush()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
