package check

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/temirov/monolint/internal/manifest"
)

const (
	configurationBlockKeyConstant            = "monolint"
	configurationDecodeErrorTemplateConstant = "invalid %q block in %s: %w"
)

// CommandConfiguration mirrors the check flags as an embedded configuration
// block in the root manifest. Field keys are camelCase to match manifest
// conventions.
type CommandConfiguration struct {
	Fix                bool     `mapstructure:"fix"`
	Select             string   `mapstructure:"select"`
	NoInstall          bool     `mapstructure:"noInstall"`
	FailOnWarnings     bool     `mapstructure:"failOnWarnings"`
	IgnoreRules        []string `mapstructure:"ignoreRules"`
	IgnorePackages     []string `mapstructure:"ignorePackages"`
	IgnoreDependencies []string `mapstructure:"ignoreDependencies"`
}

// LoadEmbeddedConfiguration decodes the root manifest's configuration block.
// A missing block yields the zero configuration.
func LoadEmbeddedConfiguration(rootManifest *manifest.Manifest) (CommandConfiguration, error) {
	var configuration CommandConfiguration
	if rootManifest == nil {
		return configuration, nil
	}

	configurationBlock, exists := rootManifest.ConfigBlock(configurationBlockKeyConstant)
	if !exists {
		return configuration, nil
	}

	if decodeError := mapstructure.Decode(configurationBlock, &configuration); decodeError != nil {
		return CommandConfiguration{}, fmt.Errorf(configurationDecodeErrorTemplateConstant, configurationBlockKeyConstant, rootManifest.Path, decodeError)
	}
	return configuration, nil
}

// ToOptions converts the configuration into command options rooted at the
// provided path.
func (configuration CommandConfiguration) ToOptions(rootPath string) CommandOptions {
	return CommandOptions{
		RootPath:           rootPath,
		Fix:                configuration.Fix,
		SelectPolicy:       configuration.Select,
		NoInstall:          configuration.NoInstall,
		FailOnWarnings:     configuration.FailOnWarnings,
		IgnoreRules:        configuration.IgnoreRules,
		IgnorePackages:     configuration.IgnorePackages,
		IgnoreDependencies: configuration.IgnoreDependencies,
	}
}
