//go:build windows

package windowpos

import (
	"sync"
	"syscall"
	"unsafe"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
)

var (
	user32             = syscall.NewLazyDLL("user32.dll")
	procGetWindowRect  = user32.NewProc("GetWindowRect")
	procSetWindowPos   = user32.NewProc("SetWindowPos")
	procMonitorFromWnd = user32.NewProc("MonitorFromWindow")
	procGetMonitorInfo = user32.NewProc("GetMonitorInfoW")
)

type winRect struct {
	Left, Top, Right, Bottom int32
}

type monitorInfo struct {
	Size    uint32
	Monitor winRect
	Work    winRect
	Flags   uint32
}

const (
	swpNOSIZE     = 0x0001
	swpNOZORDER   = 0x0004
	swpNOACTIVATE = 0x0010

	monitorDefaultToNearest = 0x00000002
)

// Position returns the top-left corner of the native window behind w.
func Position(w fyne.Window) (int, int, bool) {
	var r winRect
	ok := withNativeHWND(w, func(hwnd uintptr) bool {
		return windowRect(hwnd, &r)
	})
	return int(r.Left), int(r.Top), ok
}

// Move places the native window behind w at x, y, pulled back inside the work
// area of the nearest monitor. Size and Z-order are left alone.
func Move(w fyne.Window, x, y int) bool {
	return withNativeHWND(w, func(hwnd uintptr) bool {
		var r winRect
		if windowRect(hwnd, &r) {
			x, y = clampToWork(hwnd, r, x, y)
		}
		ret, _, err := procSetWindowPos.Call(hwnd, 0, uintptr(int32(x)), uintptr(int32(y)), 0, 0, swpNOSIZE|swpNOZORDER|swpNOACTIVATE)
		if ret == 0 {
			if err != syscall.Errno(0) {
				fyne.LogError("SetWindowPos failed", err)
			}
			return false
		}
		return true
	})
}

func windowRect(hwnd uintptr, r *winRect) bool {
	ret, _, err := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(r)))
	if ret == 0 {
		if err != syscall.Errno(0) {
			fyne.LogError("GetWindowRect failed", err)
		}
		return false
	}
	return true
}

// clampToWork keeps a window of r's size fully on the monitor nearest hwnd.
// The target is returned unchanged when the monitor cannot be queried.
func clampToWork(hwnd uintptr, r winRect, x, y int) (int, int) {
	hmon, _, _ := procMonitorFromWnd.Call(hwnd, monitorDefaultToNearest)
	if hmon == 0 {
		return x, y
	}
	mi := monitorInfo{Size: uint32(unsafe.Sizeof(monitorInfo{}))}
	if ret, _, _ := procGetMonitorInfo.Call(hmon, uintptr(unsafe.Pointer(&mi))); ret == 0 {
		return x, y
	}
	work := mi.Work
	return clampAxis(x, int(r.Right-r.Left), int(work.Left), int(work.Right)),
		clampAxis(y, int(r.Bottom-r.Top), int(work.Top), int(work.Bottom))
}

func clampAxis(pos, size, lo, hi int) int {
	if pos+size > hi {
		pos = hi - size
	}
	if pos < lo {
		pos = lo
	}
	return pos
}

// withNativeHWND runs fn with the HWND of w on the GUI thread and waits for
// its result.
func withNativeHWND(w fyne.Window, fn func(hwnd uintptr) bool) bool {
	nw, ok := w.(driver.NativeWindow)
	if !ok {
		return false
	}
	var (
		success bool
		wg      sync.WaitGroup
	)
	wg.Add(1)
	nw.RunNative(func(ctx any) {
		defer wg.Done()
		winCtx, ok := ctx.(driver.WindowsWindowContext)
		if !ok || winCtx.HWND == 0 {
			return
		}
		success = fn(winCtx.HWND)
	})
	wg.Wait()
	return success
}
