package main

import (
	"fmt"
	"strings"

	"github.com/pbanos/id3/tree"
	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	metadataInput string
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show and manage decision trees",
		Long:  `Show a decision tree as one line per path from its root to a leaf, and manage the trees saved on Redis`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			md, err := config.loadMetadata(config.metadataInput, "")
			if err != nil {
				return err
			}
			t, err := config.loadTree(cmd.Context(), config.treeInput, md.domain)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# label: %s, measure: %v, max depth: %d, depth: %d, leaves: %d\n", t.Label, t.Measure, t.MaxDepth, tree.Depth(t.Root), tree.Leaves(t.Root))
			_, err = fmt.Fprintln(out, t)
			return err
		},
	}
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YAML file or an attribute description file describing the features the tree tests (required)")
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to show will be read and parsed as JSON, or redis:ID for a tree saved on Redis (required)")
	cmd.AddCommand(treeListCmd(rootConfig), treeDeleteCmd(rootConfig))
	return cmd
}

func (tcc *treeCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if tcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}

func treeListCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the trees saved on Redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := rootConfig.treeStore()
			if err != nil {
				return err
			}
			defer closeStore()
			ids, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:%s\n", redisLocation, id)
			}
			return nil
		},
	}
}

func treeDeleteCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete trees saved on Redis",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := rootConfig.treeStore()
			if err != nil {
				return err
			}
			defer closeStore()
			for _, id := range args {
				if err = store.Delete(cmd.Context(), trimRedisLocation(id)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func trimRedisLocation(id string) string {
	return strings.TrimPrefix(id, redisLocation+":")
}
