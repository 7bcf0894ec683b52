package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

func (a *app) partsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parts <input.xlsx>",
		Short: "List the manifest and the relationships of every part",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arc, err := packaging.Open(args[0])
			if err != nil {
				return err
			}
			defer arc.Close()
			return listParts(cmd.OutOrStdout(), arc)
		},
	}
}

func listParts(out io.Writer, arc *packaging.Archive) error {
	data, err := arc.Read(packaging.ManifestPath)
	if err != nil {
		return err
	}
	m, err := packaging.ParseManifest(data)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PART\tCONTENT TYPE\tPRESENT")
	for _, name := range arc.Names() {
		fmt.Fprintf(tw, "%s\t%s\tyes\n", packaging.PartName(name), m.ContentTypeOf(name))
	}
	for _, o := range m.Overrides {
		if !arc.Has(o.Path()) {
			fmt.Fprintf(tw, "%s\t%s\tno\n", o.PartName, o.ContentType)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, name := range arc.Names() {
		if m.ContentTypeOf(name) != packaging.ContentTypeRelationships {
			continue
		}
		data, err := arc.Read(name)
		if err != nil {
			return err
		}
		rels, err := packaging.ParseRelationships(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(out, "\n%s\n", name)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, r := range rels {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", r.ID, r.Kind(), r.Target)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) volatileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "volatile <input.xlsx>",
		Short: "Print the volatile dependencies part, re-encoded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options()
			if err != nil {
				return err
			}
			wb, err := xlpkg.LoadWorkbook(args[0], opts)
			if err != nil {
				return err
			}
			defer wb.Close()
			if wb.Volatile == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no volatile dependencies")
				return nil
			}
			data, err := schema.Marshal(wb.Volatile)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func (a *app) repackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repack <input.xlsx> <output.xlsx>",
		Short: "Rewrite a package, re-encoding its manifest and relationships",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			arc, err := packaging.Open(args[0])
			if err != nil {
				return err
			}
			defer arc.Close()
			out, err := os.Create(args[1])
			if err != nil {
				return err
			}
			stats, err := packaging.Repack(arc, out)
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				os.Remove(args[1])
				return err
			}
			a.logger.WithField("output", args[1]).Info("package repacked")
			fmt.Fprintf(cmd.OutOrStdout(), "%d parts, %d relationships, %d duplicate media dropped, %d relationship parts retargeted\n",
				stats.Parts, stats.Relationships, stats.MediaDropped, stats.Retargeted)
			return nil
		},
	}
}
