//go:build darwin && cgo

package openfile

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework Cocoa
int miniplayerInstallOpenFiles(void);
*/
import "C"

import (
	"fmt"
	"log"
	"sync"
)

var (
	platformMu      sync.Mutex
	platformDeliver func(string)
)

// Platform returns the installer for Finder's "open with" requests. It adds
// application:openFiles: to the NSApplication delegate once AppKit is about
// to finish launching, so files the app was launched with are caught too.
func Platform() Installer { return InstallerFunc(installOpenFiles) }

func installOpenFiles(deliver func(string)) error {
	platformMu.Lock()
	platformDeliver = deliver
	platformMu.Unlock()
	if rc := C.miniplayerInstallOpenFiles(); rc != 0 {
		return fmt.Errorf("attach application:openFiles: %s", openFilesFailure(int(rc)))
	}
	return nil
}

func openFilesFailure(rc int) string {
	switch rc {
	case 1:
		return "application has no delegate"
	case 2:
		return "delegate already handles open requests"
	}
	return fmt.Sprintf("code %d", rc)
}

//export miniplayerOpenFile
func miniplayerOpenFile(path *C.char) {
	p := C.GoString(path)
	platformMu.Lock()
	deliver := platformDeliver
	platformMu.Unlock()
	if deliver != nil {
		deliver(p)
	}
}

//export miniplayerOpenFilesFailed
func miniplayerOpenFilesFailed(rc C.int) {
	log.Printf("openfile: attach application:openFiles: %s", openFilesFailure(int(rc)))
}
