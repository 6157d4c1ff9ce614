// Package version reports the streamcast build. It fills config.Config's
// Version when none is configured, which in turn tags the OTel resource.
//
// Version and commit can be set at compile time:
//
//	go build -ldflags "-X github.com/kbukum/streamcast/version.Version=1.0.0"
package version
