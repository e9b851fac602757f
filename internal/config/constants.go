package config

// Lua schema field names and globals
const (
	luaGlobalFetchbin = "fetchbin"
	luaFieldVersion   = "version"
	luaFieldBaseURL   = "base_url"
	luaFieldBinDir    = "bin_dir"
	luaFieldLogLevel  = "log_level"
	luaFieldOptions   = "options"
)

// Environment variables that override file settings.
const (
	EnvVersion  = "FETCHBIN_VERSION"
	EnvBaseURL  = "FETCHBIN_BASE_URL"
	EnvBinDir   = "FETCHBIN_BIN_DIR"
	EnvLogLevel = "FETCHBIN_LOG_LEVEL"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "fetchbin.lua"

const (
	defaultVersion  = "v0.1.1"
	defaultBaseURL  = "https://github.com/gruntwork-io/fetch/releases/download/"
	defaultLogLevel = "warn"
)
