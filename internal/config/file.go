package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// File is a campaign description stored as YAML. Every field is optional;
// pointer fields distinguish "unset" from a zero value.
type File struct {
	Workers      *int           `yaml:"workers"`
	Factory      string         `yaml:"factory"`
	Submitter    string         `yaml:"submitter"`
	Pattern      string         `yaml:"pattern"`
	Target       string         `yaml:"target"`
	Bytecode     string         `yaml:"bytecode"`
	BytecodeFile string         `yaml:"bytecode_file"`
	InitCodeHash string         `yaml:"init_hash"`
	ResultsFile  string         `yaml:"results"`
	LogFile      string         `yaml:"log_file"`
	LogInterval  *int           `yaml:"log_interval"`
	Verbose      *bool          `yaml:"verbose"`
	ReportLane   *int           `yaml:"report_lane"`
	ReportEvery  *uint64        `yaml:"report_every"`
	Timeout      *time.Duration `yaml:"timeout"`
}

// LoadFile parses a campaign file. Unknown keys are rejected.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open campaign file: %w", err)
	}
	defer f.Close()

	var out File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse campaign file %s: %w", path, err)
	}
	return &out, nil
}

// Merge copies values from the campaign file into c, skipping any setting
// whose flag was given explicitly on the command line.
func (c *Config) Merge(f *File, flags *pflag.FlagSet) {
	explicit := func(name string) bool {
		if flags == nil {
			return false
		}
		fl := flags.Lookup(name)
		return fl != nil && fl.Changed
	}
	setString := func(name string, dst *string, v string) {
		if v != "" && !explicit(name) {
			*dst = v
		}
	}

	setString("factory", &c.Factory, f.Factory)
	setString("submitter", &c.Submitter, f.Submitter)
	setString("pattern", &c.Pattern, f.Pattern)
	setString("target", &c.Target, f.Target)
	setString("bytecode", &c.Bytecode, f.Bytecode)
	setString("bytecode-file", &c.BytecodeFile, f.BytecodeFile)
	setString("init-hash", &c.InitCodeHash, f.InitCodeHash)
	setString("results", &c.ResultsFile, f.ResultsFile)
	setString("log-file", &c.LogFile, f.LogFile)

	if f.Workers != nil && !explicit("workers") {
		c.Workers = *f.Workers
	}
	if f.LogInterval != nil && !explicit("log-interval") {
		c.LogInterval = *f.LogInterval
	}
	if f.Verbose != nil && !explicit("verbose") {
		c.Verbose = *f.Verbose
	}
	if f.ReportLane != nil && !explicit("report-lane") {
		c.ReportLane = *f.ReportLane
	}
	if f.ReportEvery != nil && !explicit("report-every") {
		c.ReportEvery = *f.ReportEvery
	}
	if f.Timeout != nil && !explicit("timeout") {
		c.Timeout = *f.Timeout
	}
}
