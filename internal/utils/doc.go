// Package utils exposes the ambient helpers shared by the CLI.
//
// ConfigurationLoader layers embedded defaults, configuration files found in
// the working directory or the XDG configuration directory, and environment
// variables through Viper. LoggerFactory builds zap loggers in structured or
// console format.
package utils
