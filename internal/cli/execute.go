package cli

import (
	"context"
	"fmt"
	"os/signal"

	"github.com/stigoleg/mouse-keepalive/internal/ui"
)

// Execute runs the command with args until it finishes or a shutdown signal
// arrives, and returns the process exit code.
func Execute(opts Options, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals()...)
	defer stop()

	cmd := NewRootCommand(opts)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatError(err))
		return 1
	}
	return 0
}
