package common

import (
	"fmt"
	"log"
	"os"
	"time"
)

var (
	sysLogger = log.New(os.Stdout, "", 0)
	errLogger = log.New(os.Stderr, "", 0)
)

func logTimestamp() string {
	return time.Now().Format("2006/01/02 - 15:04:05")
}

// SysLog writes a process-level log line to stdout.
func SysLog(s string) {
	sysLogger.Println(fmt.Sprintf("[SYS] %s | %s", logTimestamp(), s))
}

// SysError writes a process-level error line to stderr.
func SysError(s string) {
	errLogger.Println(fmt.Sprintf("[SYS] %s | %s", logTimestamp(), s))
}

// FatalLog logs the message and exits with a non-zero status.
func FatalLog(s string) {
	errLogger.Println(fmt.Sprintf("[FATAL] %s | %s", logTimestamp(), s))
	os.Exit(1)
}
