package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-reportgen"
	"github.com/goliatone/go-reportgen/pkg/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and import field set definitions",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the definitions of the configured catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file-or-url>",
	Short: "Import a catalog payload into the catalog database",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogImport,
}

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a definition from the catalog database",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogDelete,
}

func init() {
	catalogCmd.AddCommand(catalogListCmd, catalogImportCmd, catalogDeleteCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(true)
	if err != nil {
		return err
	}
	defer a.Close()

	reader, err := a.catalogReader(cmd.Context())
	if err != nil {
		return err
	}
	defs, err := reader.List(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tFIELDS")
	for _, def := range defs {
		fmt.Fprintf(w, "%s\t%s\t%d\n", def.ID, def.Title, len(def.Fields))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printRejections(cmd, a.rejected)
	return nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	a, err := bootstrap(true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	src, err := reportgen.ParseSource(args[0])
	if err != nil {
		return err
	}
	payload, err := reportgen.NewLoader(catalog.WithHTTP(a.cfg.Catalog.RequestTimeout)).Load(ctx, src)
	if err != nil {
		return err
	}
	result, err := s.Import(ctx, payload.Raw())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("%d définitions importées depuis %s", len(result.Definitions), src.Location()))
	printRejections(cmd, result.Quarantined)
	return nil
}

func runCatalogDelete(cmd *cobra.Command, args []string) error {
	a, err := bootstrap(true)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.openStore(cmd.Context())
	if err != nil {
		return err
	}
	if err := s.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("définition %s supprimée", args[0]))
	return nil
}

func printRejections(cmd *cobra.Command, rejected []catalog.Rejection) {
	for _, r := range rejected {
		label := r.ID
		if label == "" {
			label = fmt.Sprintf("#%d", r.Index)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("ignorée %s: %s", label, r.Reason))
	}
}
