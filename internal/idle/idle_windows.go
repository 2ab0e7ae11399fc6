//go:build windows

package idle

import (
	"context"
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

const supported = true

var (
	moduser32            = windows.NewLazySystemDLL("user32.dll")
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procGetLastInputInfo = moduser32.NewProc("GetLastInputInfo")
	procGetTickCount     = modkernel32.NewProc("GetTickCount")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

func osIdleTime(ctx context.Context) (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	r, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if r == 0 {
		return 0, fmt.Errorf("GetLastInputInfo: %w", err)
	}
	now, _, _ := procGetTickCount.Call()
	// Both counters are 32-bit milliseconds; unsigned subtraction handles wrap.
	return time.Duration(uint32(now)-info.dwTime) * time.Millisecond, nil
}
