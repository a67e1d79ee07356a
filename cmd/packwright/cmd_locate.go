package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/packwright/internal/domain-adapters/gateways"
)

func (a *app) newLocateCommand() *cobra.Command {
	var (
		dir      string
		pattern  string
		require  []string
		exclude  []string
		fullPath bool
	)

	cmd := &cobra.Command{
		Use:   "locate",
		Args:  cobra.NoArgs,
		Short: "Print the executable jar found in the build output directory",
		Long: `Print the first file in the build output directory whose full path matches
the artifact pattern, contains every --require substring and none of the
--exclude substrings. Directory entries are visited in filesystem order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}

			settings := p.Artifacts
			if cmd.Flags().Changed("dir") {
				settings.Dir = dir
			}
			if cmd.Flags().Changed("pattern") {
				settings.Pattern = pattern
			}
			if cmd.Flags().Changed("require") {
				settings.Require = require
			}
			if cmd.Flags().Changed("exclude") {
				settings.Exclude = exclude
			}

			query, err := gateways.NewArtifactQuery(settings.Pattern, settings.Require, settings.Exclude)
			if err != nil {
				return err
			}

			artifact, err := gateways.NewArtifactFinder().FindFirst(settings.Dir, query)
			if err != nil {
				return err
			}

			if fullPath {
				fmt.Fprintln(a.stdout, artifact.Path)
			} else {
				fmt.Fprintln(a.stdout, artifact.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Build output directory (default from config: build/libs)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Regular expression searched in the full path")
	cmd.Flags().StringArrayVar(&require, "require", nil, "Substring every match must contain (repeatable)")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "Substring that disqualifies a match (repeatable)")
	cmd.Flags().BoolVar(&fullPath, "path", false, "Print the absolute path instead of the file name")

	return cmd
}
