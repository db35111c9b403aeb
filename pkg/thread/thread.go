// Package thread pins windowing calls to the main OS thread.
// Cocoa only accepts window and event calls from the main thread, so on
// macOS they are queued there; elsewhere they run in place.
// See: https://github.com/golang/go/wiki/LockOSThread
package thread

import (
	"runtime"

	"github.com/faiface/mainthread"
)

var isMacOs = runtime.GOOS == "darwin"

// MainWrapMaybe runs the program body so that MainMaybe can reach the
// main thread. It returns when run returns.
func MainWrapMaybe(run func()) {
	if isMacOs {
		mainthread.Run(run)
	} else {
		run()
	}
}

// MainMaybe calls f on the main thread and waits for it.
func MainMaybe(f func()) {
	if isMacOs {
		mainthread.Call(f)
	} else {
		f()
	}
}

// MainErrMaybe is MainMaybe for calls that fail.
func MainErrMaybe(f func() error) (err error) {
	MainMaybe(func() { err = f() })
	return
}
