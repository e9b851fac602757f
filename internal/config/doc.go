// Package config loads fetchbin settings.
//
// Settings come from three layers, later layers winning:
//
//  1. built-in defaults (release v0.1.1, binary next to the fetchbin executable)
//  2. a Lua file, fetchbin.lua by default
//  3. FETCHBIN_* environment variables
//
// The Lua file runs in a sandboxed gopher-lua VM with a read-only platform
// table available, so settings can depend on the detected OS:
//
//	fetchbin = {
//	    version = "v0.1.1",
//	    bin_dir = platform.is_windows and "C:/tools/fetchbin" or "/opt/fetchbin",
//	    log_level = "info",
//	    options = {
//	        repo = "https://github.com/gruntwork-io/module-ecs",
//	        tag = "0.1.5",
//	        ["source-path"] = { "/modules/ecs-cluster", "/modules/ecs-service" },
//	    },
//	}
//
// Map-style options are emitted in sorted key order. To control the order,
// use an array of pairs instead:
//
//	options = {
//	    { "repo", "https://github.com/gruntwork-io/module-ecs" },
//	    { "tag", "0.1.5" },
//	    { "help" },
//	}
//
// Option sets can also be loaded from YAML files, where document order is
// kept as written.
package config
