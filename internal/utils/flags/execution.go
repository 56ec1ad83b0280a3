// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Print the git commands instead of running them"
	// HaltOnFailureFlagName exposes the shared halt-on-failure flag name.
	HaltOnFailureFlagName = "halt-on-failure"
	// HaltOnFailureFlagUsage describes the shared halt-on-failure flag purpose.
	HaltOnFailureFlagUsage = "Stop at the first failing git command"
)

// ExecutionDefaults describes default flag values shared across commands.
type ExecutionDefaults struct {
	DryRun        bool
	HaltOnFailure bool
}

// ExecutionFlagDefinition captures a single flag's configuration.
type ExecutionFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// ExecutionFlagDefinitions groups execution flag definitions.
type ExecutionFlagDefinitions struct {
	DryRun        ExecutionFlagDefinition
	HaltOnFailure ExecutionFlagDefinition
}

// DefaultExecutionFlagDefinitions enables both execution toggles with their standard names.
func DefaultExecutionFlagDefinitions() ExecutionFlagDefinitions {
	return ExecutionFlagDefinitions{
		DryRun:        ExecutionFlagDefinition{Name: DryRunFlagName, Usage: DryRunFlagUsage, Enabled: true},
		HaltOnFailure: ExecutionFlagDefinition{Name: HaltOnFailureFlagName, Usage: HaltOnFailureFlagUsage, Enabled: true},
	}
}

// ExecutionFlags reports execution toggles along with whether the user supplied them explicitly.
type ExecutionFlags struct {
	DryRun           bool
	DryRunSet        bool
	HaltOnFailure    bool
	HaltOnFailureSet bool
}

// BindExecutionFlags attaches standardized execution toggles to the provided command using persistent scope.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults, definitions ExecutionFlagDefinitions) {
	if command == nil {
		return
	}

	persistentFlagSet := command.PersistentFlags()

	bindToggleFlag(persistentFlagSet, definitions.DryRun, defaults.DryRun)
	bindToggleFlag(persistentFlagSet, definitions.HaltOnFailure, defaults.HaltOnFailure)
}

// ResolveExecutionFlags reads the standard execution toggles from the command's flag sets.
func ResolveExecutionFlags(command *cobra.Command) ExecutionFlags {
	if command == nil {
		return ExecutionFlags{}
	}

	dryRun, dryRunSet := lookupToggle(command, DryRunFlagName)
	haltOnFailure, haltOnFailureSet := lookupToggle(command, HaltOnFailureFlagName)

	return ExecutionFlags{
		DryRun:           dryRun,
		DryRunSet:        dryRunSet,
		HaltOnFailure:    haltOnFailure,
		HaltOnFailureSet: haltOnFailureSet,
	}
}

func bindToggleFlag(flagSet *pflag.FlagSet, definition ExecutionFlagDefinition, defaultValue bool) {
	if flagSet == nil {
		return
	}
	if !definition.Enabled {
		return
	}
	if len(definition.Name) == 0 {
		return
	}

	AddToggleFlag(flagSet, nil, definition.Name, defaultValue, definition.Usage)
}

func lookupToggle(command *cobra.Command, flagName string) (bool, bool) {
	flag := command.Flags().Lookup(flagName)
	if flag == nil {
		flag = command.InheritedFlags().Lookup(flagName)
	}
	if flag == nil {
		flag = command.PersistentFlags().Lookup(flagName)
	}
	if flag == nil {
		return false, false
	}

	value, parseError := parseToggleValue(flag.Value.String())
	if parseError != nil {
		return false, false
	}
	return value, flag.Changed
}
