package version

// Version is set at build time with -ldflags "-X github.com/portify/portify/version.Version=..."
var Version string
