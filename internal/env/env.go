package env

// Build metadata, overridden at link time via -ldflags.
var (
	AppName    = "fatprobe"
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
