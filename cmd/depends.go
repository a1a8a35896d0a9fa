package cmd

import (
	"fmt"
	"strings"

	"github.com/debdig/debdig/pkg/config"
	"github.com/debdig/debdig/pkg/debian"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

var dependsCmd = &cobra.Command{
	Use:   "depends",
	Short: "list the direct dependencies of a package",
	RunE:  depends,
}

const flagConfig = "config"

func init() {
	dependsCmd.Flags().StringP(flagConfig, "c", "", "path to a configuration file")

	_ = dependsCmd.MarkFlagRequired(flagConfig)
	_ = dependsCmd.MarkFlagFilename(flagConfig, ".toml", ".yaml", ".yml", ".json")
}

func depends(cmd *cobra.Command, _ []string) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	configPath, _ := cmd.Flags().GetString(flagConfig)

	// read and validate the config file
	cfg, err := config.Read(configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}
	log.V(1).Info("loaded configuration", "package", cfg.PackageName, "repo", cfg.RepositoryURL, "mode", cfg.WorkingMode)

	idx, err := debian.NewIndex(cmd.Context(), debian.Request{
		Mode:         debian.Mode(cfg.WorkingMode),
		Location:     cfg.RepositoryURL,
		Distribution: cfg.Distribution,
		Component:    cfg.Component,
		Architecture: cfg.Architecture,
	})
	if err != nil {
		return err
	}
	log.V(2).Info("parsed index", "count", idx.Count(), "source", idx.Source())

	deps, ok := idx.Depends(cfg.PackageName)
	if !ok {
		return fmt.Errorf("package not found in index: %s", cfg.PackageName)
	}
	if len(deps) == 0 {
		cmd.Printf("%s declares no dependencies\n", cfg.PackageName)
		return nil
	}
	for _, dep := range deps {
		if cfg.FilterSubstring != "" && !strings.Contains(dep, cfg.FilterSubstring) {
			continue
		}
		cmd.Println(dep)
	}
	return nil
}
