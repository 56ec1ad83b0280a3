package move

import "strings"

const (
	defaultBranchNameConstant        = "temp-move-file"
	defaultPathPrefixConstant        = ".."
	defaultRequiredDirectoryConstant = "Scripts"
	branchConfigurationKeyConstant   = "branch"
	prefixConfigurationKeyConstant   = "prefix"
	requiredDirectoryKeyConstant     = "required_directory"
	dryRunConfigurationKeyConstant   = "dry_run"
	haltOnFailureKeyConstant         = "halt_on_failure"
	configurationKeySeparator        = "."
)

// WorkflowConfiguration captures the settings of a move run.
type WorkflowConfiguration struct {
	BranchName        string `mapstructure:"branch"`
	PathPrefix        string `mapstructure:"prefix"`
	RequiredDirectory string `mapstructure:"required_directory"`
	DryRun            bool   `mapstructure:"dry_run"`
	HaltOnFailure     bool   `mapstructure:"halt_on_failure"`
}

// DefaultWorkflowConfiguration returns the settings used when nothing is configured.
func DefaultWorkflowConfiguration() WorkflowConfiguration {
	return WorkflowConfiguration{
		BranchName:        defaultBranchNameConstant,
		PathPrefix:        defaultPathPrefixConstant,
		RequiredDirectory: defaultRequiredDirectoryConstant,
		DryRun:            false,
		HaltOnFailure:     false,
	}
}

// DefaultConfigurationValues exposes the defaults as configuration keys nested under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultWorkflowConfiguration()
	keyPrefix := strings.TrimSpace(prefix)
	if len(keyPrefix) > 0 {
		keyPrefix += configurationKeySeparator
	}
	return map[string]any{
		keyPrefix + branchConfigurationKeyConstant: defaults.BranchName,
		keyPrefix + prefixConfigurationKeyConstant: defaults.PathPrefix,
		keyPrefix + requiredDirectoryKeyConstant:   defaults.RequiredDirectory,
		keyPrefix + dryRunConfigurationKeyConstant: defaults.DryRun,
		keyPrefix + haltOnFailureKeyConstant:       defaults.HaltOnFailure,
	}
}

// Sanitize trims surrounding whitespace without applying implicit defaults.
func (configuration WorkflowConfiguration) Sanitize() WorkflowConfiguration {
	sanitized := configuration

	sanitized.BranchName = strings.TrimSpace(configuration.BranchName)
	sanitized.PathPrefix = strings.TrimSpace(configuration.PathPrefix)
	sanitized.RequiredDirectory = strings.TrimSpace(configuration.RequiredDirectory)

	return sanitized
}
