package version

// will be replaced with the release version when using goreleaser
var version = "development"

// NetstatusVersion returns the Netstatus version
func NetstatusVersion() string {
	return version
}
