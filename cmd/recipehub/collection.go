package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/matt-dz/recipehub/internal/api/token"
	"github.com/matt-dz/recipehub/internal/collection"
)

var (
	collectionProfile string
	collectionJSON    bool
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Inspect and repair a profile's collections",
}

var collectionListCmd = &cobra.Command{
	Use:   "list <favorites|likedRecipes|createdRecipes>",
	Short: "List the recipes in a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionList,
}

var collectionRemoveCmd = &cobra.Command{
	Use:   "remove <collection> <recipe id>",
	Short: "Remove a recipe from a collection",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollectionRemove,
}

func init() {
	collectionCmd.PersistentFlags().StringVarP(&collectionProfile, "profile", "p", "", "profile id (required)")
	_ = collectionCmd.MarkPersistentFlagRequired("profile")
	collectionListCmd.Flags().BoolVar(&collectionJSON, "json", false, "print the stored JSON")

	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionRemoveCmd)
}

func runCollectionList(cmd *cobra.Command, args []string) error {
	name, err := collection.ParseName(args[0])
	if err != nil {
		return err
	}
	if err := token.ParseProfileID(collectionProfile); err != nil {
		return err
	}
	e, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	c, err := e.Collections.WithProfile(collectionProfile, "cli").Load(cmd.Context(), name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if collectionJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSOURCE")
	for _, r := range c {
		source := "external"
		if r.IsUserAuthored() {
			source = "user"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, r.Title, source)
	}
	return tw.Flush()
}

func runCollectionRemove(cmd *cobra.Command, args []string) error {
	name, err := collection.ParseName(args[0])
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("parsing recipe id: %w", err)
	}
	if err := token.ParseProfileID(collectionProfile); err != nil {
		return err
	}
	e, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	c, err := e.Collections.WithProfile(collectionProfile, "cli").Remove(cmd.Context(), name, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s now holds %d recipes\n", name, len(c))
	return nil
}
