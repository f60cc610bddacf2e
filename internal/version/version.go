package version

// Version is the app version reported by /healthz. Overridden at build time
// via -ldflags "-X github.com/tnmai/diemdanh_backend/internal/version.Version=...".
var Version = "dev"
