package backend

import (
	"os"
	"syscall"
)

// createNoWindow keeps the sidecar from opening a console window.
const createNoWindow = 0x08000000

func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{HideWindow: true, CreationFlags: createNoWindow}
}

// terminate kills outright; console processes started without a window get
// no interrupt.
func terminate(proc *os.Process) error {
	return proc.Kill()
}

func exitSignal(*os.ProcessState) string {
	return ""
}
