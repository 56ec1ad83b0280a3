package flags

import "github.com/spf13/cobra"

const (
	// BranchFlagName exposes the temporary branch flag name.
	BranchFlagName = "branch"
	// BranchFlagUsage describes the temporary branch flag purpose.
	BranchFlagUsage = "Temporary branch used while moving files"
	// PrefixFlagName exposes the path prefix flag name.
	PrefixFlagName = "prefix"
	// PrefixFlagUsage describes the path prefix flag purpose.
	PrefixFlagUsage = "Directory prefix joined to every source and destination argument"
	// RequiredDirectoryFlagName exposes the required working directory flag name.
	RequiredDirectoryFlagName = "required-directory"
	// RequiredDirectoryFlagUsage describes the required working directory flag purpose.
	RequiredDirectoryFlagUsage = "Directory name the command must be invoked from (empty disables the check)"
	// ManifestFlagName exposes the move manifest flag name.
	ManifestFlagName = "manifest"
	// ManifestFlagUsage describes the move manifest flag purpose.
	ManifestFlagUsage = "YAML file listing additional source and destination pairs"
)

// BranchFlagDefinition captures configuration for branch context flags.
type BranchFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// BranchFlagValues stores branch context flag values.
type BranchFlagValues struct {
	Name string
}

// BindBranchFlags attaches branch context flags to the provided command.
func BindBranchFlags(command *cobra.Command, defaults BranchFlagValues, definition BranchFlagDefinition) *BranchFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled || len(definition.Name) == 0 {
		return &values
	}

	command.PersistentFlags().StringVar(&values.Name, definition.Name, defaults.Name, definition.Usage)
	return &values
}

// PathFlagDefinition captures configuration for a single path-valued flag.
type PathFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// PathFlagDefinitions groups the path flags understood by the move workflow.
type PathFlagDefinitions struct {
	Prefix            PathFlagDefinition
	RequiredDirectory PathFlagDefinition
	Manifest          PathFlagDefinition
}

// DefaultPathFlagDefinitions enables every path flag with its standard name.
func DefaultPathFlagDefinitions() PathFlagDefinitions {
	return PathFlagDefinitions{
		Prefix:            PathFlagDefinition{Name: PrefixFlagName, Usage: PrefixFlagUsage, Enabled: true},
		RequiredDirectory: PathFlagDefinition{Name: RequiredDirectoryFlagName, Usage: RequiredDirectoryFlagUsage, Enabled: true},
		Manifest:          PathFlagDefinition{Name: ManifestFlagName, Usage: ManifestFlagUsage, Enabled: true},
	}
}

// PathFlagValues stores path flag values.
type PathFlagValues struct {
	Prefix            string
	RequiredDirectory string
	Manifest          string
}

// BindPathFlags attaches path flags to the provided command.
func BindPathFlags(command *cobra.Command, defaults PathFlagValues, definitions PathFlagDefinitions) *PathFlagValues {
	values := defaults
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	bindPathFlag := func(target *string, definition PathFlagDefinition, defaultValue string) {
		if !definition.Enabled || len(definition.Name) == 0 {
			return
		}
		if flagSet.Lookup(definition.Name) != nil {
			return
		}
		flagSet.StringVar(target, definition.Name, defaultValue, definition.Usage)
	}

	bindPathFlag(&values.Prefix, definitions.Prefix, defaults.Prefix)
	bindPathFlag(&values.RequiredDirectory, definitions.RequiredDirectory, defaults.RequiredDirectory)
	bindPathFlag(&values.Manifest, definitions.Manifest, defaults.Manifest)

	return &values
}
