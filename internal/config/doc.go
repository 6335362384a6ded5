// Package config loads logscope's own configuration.
//
// # Resolution Order
//
//  1. Built-in defaults
//  2. ~/.config/logscope/config.toml, or the path passed with --config
//  3. A .env file in the working directory, then LOGSCOPE_* environment variables
//
// A missing config file is not an error. Empty or whitespace-only values fall back
// to the defaults, and paths starting with ~ are expanded against $HOME.
//
// # Default Values
//
//   - Service URL: http://localhost:8080/log/analyze
//   - Request timeout: none (0)
//   - Log file: ~/.local/state/logscope/logscope.log
//   - Log level: info
//
// # TOML Format
//
//	service_url = "http://analysis.internal:8080/log/analyze"
//	request_timeout = "90s"
//	log_file = "~/.local/state/logscope/logscope.log"
//	log_level = "debug"
//
// # Environment
//
//   - LOGSCOPE_SERVICE_URL overrides service_url
//   - LOGSCOPE_LOG_LEVEL overrides log_level
//
// The resolved Config is validated before it is returned: the service URL must be a
// URL or a bare host:port, the log level one of debug, info, warn or error.
package config
