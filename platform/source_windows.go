//go:build windows

package platform

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/pthm-cable/snowfall/surface"
)

const (
	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCXVirtualScreen = 78
	smCYVirtualScreen = 79

	maxClassName = 256
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procFindWindowW      = user32.NewProc("FindWindowW")
	procGetWindowRect    = user32.NewProc("GetWindowRect")
	procIsIconic         = user32.NewProc("IsIconic")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
)

// EnumWindows callbacks are a scarce runtime resource, so one callback is
// shared and guarded by enumMu.
var (
	enumMu      sync.Mutex
	enumHandles []windows.HWND
	enumProc    = windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		enumHandles = append(enumHandles, hwnd)
		return 1
	})
)

// Source enumerates top-level Win32 windows in Z order.
type Source struct {
	screen       Screen
	taskbarClass *uint16
}

// NewSource creates a source for the current virtual screen.
func NewSource(taskbarClass string) (*Source, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("loading user32: %w", err)
	}
	class, err := windows.UTF16PtrFromString(taskbarClass)
	if err != nil {
		return nil, fmt.Errorf("taskbar class: %w", err)
	}
	return &Source{screen: virtualScreen(), taskbarClass: class}, nil
}

func systemMetric(index uintptr) int32 {
	r, _, _ := procGetSystemMetrics.Call(index)
	return int32(r)
}

func virtualScreen() Screen {
	return Screen{
		X:      systemMetric(smXVirtualScreen),
		Y:      systemMetric(smYVirtualScreen),
		Width:  systemMetric(smCXVirtualScreen),
		Height: systemMetric(smCYVirtualScreen),
	}
}

// Screen returns the virtual screen captured at creation.
func (s *Source) Screen() Screen {
	return s.screen
}

// Taskbar implements surface.WindowSource.
func (s *Source) Taskbar() (surface.Window, bool) {
	r, _, _ := procFindWindowW.Call(uintptr(unsafe.Pointer(s.taskbarClass)), 0)
	if r == 0 {
		return nil, false
	}
	return &window{hwnd: windows.HWND(r), screen: s.screen}, true
}

// Windows implements surface.WindowSource. Handles come back front to back.
func (s *Source) Windows() ([]surface.Window, error) {
	enumMu.Lock()
	enumHandles = enumHandles[:0]
	err := windows.EnumWindows(enumProc, nil)
	handles := append([]windows.HWND(nil), enumHandles...)
	enumMu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("%w: %w", surface.ErrEnumeration, err)
	}

	out := make([]surface.Window, len(handles))
	for i, h := range handles {
		out[i] = &window{hwnd: h, screen: s.screen}
	}
	return out, nil
}

type window struct {
	hwnd   windows.HWND
	screen Screen
}

func (w *window) Handle() uintptr { return uintptr(w.hwnd) }

func (w *window) Class() (string, error) {
	var buf [maxClassName]uint16
	n, err := windows.GetClassName(w.hwnd, &buf[0], int32(len(buf)))
	if err != nil {
		return "", fmt.Errorf("GetClassName: %w", err)
	}
	return windows.UTF16ToString(buf[:n]), nil
}

func (w *window) Visible() bool {
	return windows.IsWindowVisible(w.hwnd)
}

func (w *window) Minimized() bool {
	r, _, _ := procIsIconic.Call(uintptr(w.hwnd))
	return r != 0
}

// ExtendedBounds asks DWM for the frame without the drop shadow.
func (w *window) ExtendedBounds() (surface.Rect, error) {
	var r windows.Rect
	err := windows.DwmGetWindowAttribute(w.hwnd, windows.DWMWA_EXTENDED_FRAME_BOUNDS,
		unsafe.Pointer(&r), uint32(unsafe.Sizeof(r)))
	if err != nil {
		return surface.Rect{}, fmt.Errorf("DwmGetWindowAttribute: %w", err)
	}
	return w.screen.local(r.Left, r.Top, r.Right, r.Bottom), nil
}

func (w *window) Bounds() (surface.Rect, error) {
	var r windows.Rect
	ok, _, err := procGetWindowRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r)))
	if ok == 0 {
		return surface.Rect{}, fmt.Errorf("GetWindowRect: %w", err)
	}
	return w.screen.local(r.Left, r.Top, r.Right, r.Bottom), nil
}
