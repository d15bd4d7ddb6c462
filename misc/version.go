// Package misc keeps program identification set at build time.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Set with -ldflags "-X rtfhtml/misc.version=... -X rtfhtml/misc.githash=..."
var (
	version = "dev"
	githash = "unknown"
	appName = ""
)

// GetAppName returns name of the running executable without extension.
func GetAppName() string {
	if len(appName) != 0 {
		return appName
	}
	exe := filepath.Base(os.Args[0])
	return strings.TrimSuffix(exe, filepath.Ext(exe))
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return githash
}
