//go:build !darwin && !windows

package idle

import (
	"context"
	"time"
)

const supported = false

func osIdleTime(context.Context) (time.Duration, error) {
	return 0, ErrNotSupported
}
