package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/screa/pr000xy-miner/internal/crypto"
	"github.com/screa/pr000xy-miner/pkg/pattern"
)

// Defaults of the Ropsten Pr000xy deployment
const (
	DefaultFactory      = "0x000000009a9fc3ac5280bA0D3eA852E57DD2ac1b"
	DefaultInitCodeHash = "0x112782ff5a98e1dc87d1eb49f1d499e5b065139bd000edbd7a80791598f622a4"
	DefaultTarget       = "0x0000000000000000000000000000000000000000"
	DefaultResultsFile  = "valuableProxies.txt"
	DefaultReportEvery  = 100000
)

// Errors
var (
	ErrNoPatternSpecified   = errors.New("must specify --pattern")
	ErrNoSubmitterSpecified = errors.New("must specify --submitter")
	ErrConflictingInitCode  = errors.New("specify only one of --bytecode, --bytecode-file or --init-hash")
	ErrInvalidWorkers       = errors.New("--workers must be at least 1")
)

// Config holds the application configuration
type Config struct {
	Workers      int
	Factory      string
	Submitter    string
	Pattern      string
	Target       string
	Bytecode     string
	BytecodeFile string
	InitCodeHash string
	ResultsFile  string
	Verbose      bool
	LogFile      string
	LogInterval  int // Logging interval in seconds
	ReportLane   int // Lane that reports its hash rate, -1 disables
	ReportEvery  uint64
	Timeout      time.Duration
	ConfigFile   string
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Workers:     runtime.NumCPU(),
		Factory:     DefaultFactory,
		Target:      DefaultTarget,
		ResultsFile: DefaultResultsFile,
		LogInterval: 5, // Default 5 seconds
		ReportEvery: DefaultReportEvery,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return ErrInvalidWorkers
	}
	if c.Pattern == "" {
		return ErrNoPatternSpecified
	}
	if c.Submitter == "" {
		return ErrNoSubmitterSpecified
	}
	if _, err := pattern.Compile(c.Pattern); err != nil {
		return err
	}
	if _, err := crypto.ParseAddress(c.Factory); err != nil {
		return fmt.Errorf("factory: %w", err)
	}
	if _, err := crypto.ParseAddress(c.Submitter); err != nil {
		return fmt.Errorf("submitter: %w", err)
	}
	if _, err := crypto.ParseAddress(c.Target); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	return c.ValidateInitCode()
}

// ValidateInitCode checks that at most one init code source is set and that
// a supplied digest parses.
func (c *Config) ValidateInitCode() error {
	sources := 0
	for _, s := range []string{c.Bytecode, c.BytecodeFile, c.InitCodeHash} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return ErrConflictingInitCode
	}
	if c.InitCodeHash != "" {
		if _, err := crypto.ParseHash(c.InitCodeHash); err != nil {
			return fmt.Errorf("init hash: %w", err)
		}
	}
	return nil
}

// GetTargetDescription returns a human-readable description of the target
func (c *Config) GetTargetDescription() string {
	return fmt.Sprintf("pattern %s against %s", c.Pattern, c.Target)
}

// GetInitCodeHash returns the init code digest of the campaign. Raw bytecode
// is hashed here, once; with no init code source the default digest is used.
func (c *Config) GetInitCodeHash() (common.Hash, error) {
	switch {
	case c.BytecodeFile != "":
		code, err := readBytecodeFromFile(c.BytecodeFile)
		if err != nil {
			return common.Hash{}, err
		}
		return crypto.InitCodeDigest(code), nil
	case c.Bytecode != "":
		code, err := crypto.DecodeHex(c.Bytecode)
		if err != nil {
			return common.Hash{}, fmt.Errorf("bytecode: %w", err)
		}
		return crypto.InitCodeDigest(code), nil
	case c.InitCodeHash != "":
		return crypto.ParseHash(c.InitCodeHash)
	}
	return crypto.ParseHash(DefaultInitCodeHash)
}

// readBytecodeFromFile reads hex bytecode from a file. Odd-length hex is
// rejected, as it is for --bytecode.
func readBytecodeFromFile(filename string) ([]byte, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	bytes, err := crypto.DecodeHex(string(content))
	if err != nil {
		return nil, fmt.Errorf("bytecode file %s: %w", filename, err)
	}
	return bytes, nil
}
