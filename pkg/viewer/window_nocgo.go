//go:build !cgo

package viewer

import "context"

// RunWindow reports ErrNoWindow; the window backend needs cgo.
func RunWindow(ctx context.Context, v *Viewer, width, height int) error {
	return ErrNoWindow
}
