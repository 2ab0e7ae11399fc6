//go:build !linux && !darwin && !windows

package device

func newPlatformDevice(Options) (Device, error) {
	return nil, ErrUnsupported
}
