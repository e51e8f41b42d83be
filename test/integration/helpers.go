// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// BuildBinary builds the CLI binary once for all tests
func BuildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		binaryPath = filepath.Join(os.TempDir(), "ghfinder-test")
		if os.Getenv("GOOS") == "windows" {
			binaryPath += ".exe"
		}

		cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/ghfinder")
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("failed to build binary: %v\nOutput: %s", err, output)
		}
	})

	if buildErr != nil {
		t.Fatalf("Failed to build binary: %v", buildErr)
	}

	return binaryPath
}

// CommandResult represents the result of running a command
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
	Error    error
}

// RunCommand executes the CLI with an isolated config directory
func RunCommand(t *testing.T, args ...string) *CommandResult {
	t.Helper()
	return RunCommandWithEnv(t, map[string]string{"XDG_CONFIG_HOME": t.TempDir()}, args...)
}

// RunCommandWithEnv executes the CLI with environment variables and arguments
func RunCommandWithEnv(t *testing.T, env map[string]string, args ...string) *CommandResult {
	t.Helper()

	binary := BuildBinary(t)
	cmd := exec.Command(binary, args...)

	cmd.Env = os.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := runWithTimeout(cmd, 30*time.Second)
	duration := time.Since(start)

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	return &CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
		Duration: duration,
		Error:    err,
	}
}

func runWithTimeout(cmd *exec.Cmd, timeout time.Duration) error {
	if err := cmd.Start(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-time.After(timeout):
		_ = cmd.Process.Kill()
		return fmt.Errorf("command timed out after %v", timeout)
	case err := <-done:
		return err
	}
}

// SetupTestEnv starts a mock GitHub and returns the environment pointing at it
func SetupTestEnv(t *testing.T) (map[string]string, *MockServer) {
	t.Helper()

	mockServer := NewMockServer(t)
	t.Cleanup(mockServer.Close)

	env := map[string]string{
		"XDG_CONFIG_HOME":              t.TempDir(),
		"GHFINDER_API_URL":             mockServer.URL,
		"GHFINDER_REQUESTS_PER_SECOND": "0",
	}
	return env, mockServer
}

func AssertContains(t *testing.T, output, expected string) {
	t.Helper()
	if !strings.Contains(output, expected) {
		t.Errorf("Expected output to contain %q, got:\n%s", expected, truncate(output, 500))
	}
}

func AssertNotContains(t *testing.T, output, unexpected string) {
	t.Helper()
	if strings.Contains(output, unexpected) {
		t.Errorf("Expected output not to contain %q, got:\n%s", unexpected, truncate(output, 500))
	}
}

func AssertExitCode(t *testing.T, result *CommandResult, expected int) {
	t.Helper()
	if result.ExitCode != expected {
		t.Errorf("Expected exit code %d, got %d\nStdout: %s\nStderr: %s",
			expected, result.ExitCode, truncate(result.Stdout, 500), truncate(result.Stderr, 500))
	}
}

func AssertSuccess(t *testing.T, result *CommandResult) {
	t.Helper()
	AssertExitCode(t, result, 0)
}

func AssertFailure(t *testing.T, result *CommandResult) {
	t.Helper()
	if result.ExitCode == 0 {
		t.Errorf("Expected command to fail, but it succeeded\nStdout: %s", truncate(result.Stdout, 500))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
