// Package config provides configuration management for the csvprep
// application.
//
// Configuration is loaded from three sources, in ascending precedence:
//
//  1. Built-in defaults (Default)
//  2. An optional YAML config file (config.yaml or configs/config.yaml)
//  3. Environment variables with the CSVPREP prefix, e.g.
//     CSVPREP_LOGGING_LEVEL=debug or CSVPREP_PROCESSING_ENGINE=raw
//
// The loaded configuration is validated with go-playground/validator struct
// tags before use; Load fails fast on an invalid value rather than running
// with a silently-coerced one.
//
// The package also owns filesystem path resolution. All application paths
// (logs, the processed_data backup directory) are anchored at the directory
// containing the executable, never the current working directory.
package config
