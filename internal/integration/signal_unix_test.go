//go:build !windows

package integration

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigoleg/mouse-keepalive/internal/cli"
	"github.com/stigoleg/mouse-keepalive/internal/device/devicetest"
)

const helperEnv = "MOUSE_KEEPALIVE_TEST_HELPER"

// TestSignalHelper is not a real test; it is the child process started by
// TestCleanExitOnSignal.
func TestSignalHelper(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		t.Skip("helper process only")
	}
	code := cli.Execute(cli.Options{
		Version:   "test",
		NewDevice: fakeDevice(devicetest.NewFake()),
	}, []string{"--config", os.Getenv(helperEnv + "_CONFIG"), "-i", "20ms"})
	os.Exit(code)
}

func TestCleanExitOnSignal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping signal test in short mode")
	}

	for _, sig := range []syscall.Signal{syscall.SIGINT, syscall.SIGTERM} {
		t.Run(sig.String(), func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestSignalHelper$")
			cmd.Env = append(os.Environ(), helperEnv+"=1", helperEnv+"_CONFIG="+writeConfig(t))
			stdout, err := cmd.StdoutPipe()
			require.NoError(t, err)
			var stderr bytes.Buffer
			cmd.Stderr = &stderr

			require.NoError(t, cmd.Start(), "helper process should start")

			var (
				mu     sync.Mutex
				output strings.Builder
			)
			ticking := make(chan struct{})
			scanned := make(chan struct{})
			go func() {
				defer close(scanned)
				var once sync.Once
				scanner := bufio.NewScanner(stdout)
				for scanner.Scan() {
					mu.Lock()
					output.WriteString(scanner.Text() + "\n")
					mu.Unlock()
					if strings.Contains(scanner.Text(), "activity 2") {
						once.Do(func() { close(ticking) })
					}
				}
			}()

			select {
			case <-ticking:
			case <-time.After(10 * time.Second):
				_ = cmd.Process.Kill()
				<-scanned
				_ = cmd.Wait()
				t.Fatalf("helper never ticked; stderr: %s", stderr.String())
			}

			require.NoError(t, cmd.Process.Signal(sig), "should send %s", sig)

			done := make(chan error, 1)
			go func() {
				<-scanned
				done <- cmd.Wait()
			}()

			select {
			case err := <-done:
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					t.Fatalf("helper exited with %d; stderr: %s", exitErr.ExitCode(), stderr.String())
				}
				require.NoError(t, err)
			case <-time.After(10 * time.Second):
				_ = cmd.Process.Kill()
				t.Fatal("helper did not exit after signal")
			}

			mu.Lock()
			defer mu.Unlock()
			assert.Contains(t, output.String(), "Interrupted")
			assert.Contains(t, output.String(), "Ticks:")
		})
	}
}
