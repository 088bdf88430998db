// Package consts houses some constants needed across gnocchid
package consts

import (
	"fmt"
	"runtime"
	"strings"
)

// Version contains the current semantic version of gnocchid.
const Version = "0.3.0"

// VersionDetails can be set externally as part of the build process
var VersionDetails = "" //nolint:gochecknoglobals

// FullVersion returns the maximally full version and build information for
// the currently running gnocchid executable.
func FullVersion() string {
	goVersionArch := fmt.Sprintf("%s, %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if VersionDetails != "" {
		return fmt.Sprintf("%s (%s, %s)", Version, VersionDetails, goVersionArch)
	}
	return fmt.Sprintf("%s (%s)", Version, goVersionArch)
}

// Banner returns the ASCII banner shown by the root command.
func Banner() string {
	banner := strings.Join([]string{
		`                          _     _     _ `,
		`  __ _ _ __   ___   ___ | |__ (_) __| |`,
		` / _' | '_ \ / _ \ / __|| '_ \| |/ _' |`,
		`| (_| | | | | (_) | (__ | | | | | (_| |`,
		` \__, |_| |_|\___/ \___||_| |_|_|\__,_|`,
		` |___/`,
	}, "\n")
	return banner
}
