package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/screa/pr000xy-miner/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVerifyCommand(t *testing.T) {
	out, err := execute(t, "verify",
		"--salt", "0x0000000000000000000000000000000000000000000000000000000000000000",
		"--factory", "0x0000000000000000000000000000000000000000",
		"--bytecode", "0x00",
		"--pattern", "0x0000000000000000000000000000000000000000",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "address:   0x4D1A2e2bB4F88F0250f26Ffff098B0b30B26BF38")
	assert.Contains(t, out, "score:     0 & 0: 0")
	assert.Contains(t, out, "match:     true")
}

func TestVerifyCommandErrors(t *testing.T) {
	_, err := execute(t, "verify")
	assert.ErrorIs(t, err, errNoSalt)

	_, err = execute(t, "verify", "--salt", "0x1234")
	assert.Error(t, err)

	_, err = execute(t, "verify",
		"--salt", "0x0000000000000000000000000000000000000000000000000000000000000000",
		"--pattern", "0x000000000000000000000000000000000000000g",
	)
	assert.Error(t, err)

	_, err = execute(t, "verify",
		"--salt", "0x0000000000000000000000000000000000000000000000000000000000000000",
		"--bytecode", "0x00",
		"--init-hash", "0x112782ff5a98e1dc87d1eb49f1d499e5b065139bd000edbd7a80791598f622a4",
	)
	assert.ErrorIs(t, err, config.ErrConflictingInitCode)
}

func TestScoreCommand(t *testing.T) {
	out, err := execute(t, "score", "0x0000001010101010101010101010101010101010")
	require.NoError(t, err)
	assert.Contains(t, out, "leading: 3")
	assert.Contains(t, out, "total:   3")
	assert.Contains(t, out, "reward:  1\n")
	assert.Contains(t, out, "logged:  true")

	_, err = execute(t, "score", "0x00")
	assert.Error(t, err)
}

func TestExitError(t *testing.T) {
	err := error(&exitError{code: exitTimeout})
	var ee *exitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, exitTimeout, ee.code)
	assert.Equal(t, "exit 2", err.Error())

	cause := errors.New("boom")
	err = &exitError{code: exitFailure, err: cause}
	assert.ErrorIs(t, err, cause)
}
