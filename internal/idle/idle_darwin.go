//go:build darwin

package idle

import (
	"context"
	"os/exec"
	"time"
)

const supported = true

func osIdleTime(ctx context.Context) (time.Duration, error) {
	out, err := exec.CommandContext(ctx, "ioreg", "-c", "IOHIDSystem").Output()
	if err != nil {
		return 0, err
	}
	return parseHIDIdleTime(out)
}
