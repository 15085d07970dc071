package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agrata/carbonsense/internal/refdata"
)

// newReferenceCmd creates the reference command group for inspecting the
// built-in dataset.
func newReferenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Inspect the built-in reference data",
	}
	cmd.AddCommand(
		NewReferenceCellsCmd(),
		NewReferenceMixesCmd(),
		NewReferenceSourcesCmd(),
		NewReferenceSitesCmd(),
	)
	return cmd
}

// NewReferenceCellsCmd creates the reference cells command.
func NewReferenceCellsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cells",
		Short: "List cell types, their base impact, and silicon variants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := refdata.Load()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "Cell type\tKey\tMaterials\tCO2/kWh (kg)\tWater/kWh (m3)\tSilicon variants")
			for _, ct := range refdata.AllCellTypes {
				def, err := tables.Cell(ct)
				if err != nil {
					return err
				}
				variants := "-"
				if def.HasSiliconVariant() {
					variants = "3, 5, 10, 15, 20 %"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2f\t%s\n",
					ct, ct.Key(), len(def.BOM), def.BaseImpact.CO2, def.BaseImpact.Water, variants)
			}
			return tw.Flush()
		},
	}
}

// NewReferenceMixesCmd creates the reference mixes command.
func NewReferenceMixesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mixes",
		Short: "List energy mixes and their emission formulas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "Energy mix\tKey\tCO2 at 50 GWh (t)\tCO2 at 100 GWh (t)")
			for _, mix := range refdata.AllEnergyMixes {
				formula, err := refdata.FormulaFor(mix)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%.0f\t%.0f\n",
					mix, mix.Key(), formula.TonsCO2(50), formula.TonsCO2(100))
			}
			return tw.Flush()
		},
	}
}

// NewReferenceSourcesCmd creates the reference sources command.
func NewReferenceSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List material-sourcing categories and their supplier options",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := refdata.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, cat := range tables.SourceCategories {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s (%d options)\n", cat.Name, len(cat.Options))
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "  Source\tCO2/kWh (kg)\tWater/kWh (m3)")
				for _, opt := range cat.Options {
					fmt.Fprintf(tw, "  %s\t%+.2f\t%+.2f\n", opt.Name, opt.Delta.CO2, opt.Delta.Water)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// NewReferenceSitesCmd creates the reference sites command.
func NewReferenceSitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List sites and their production constants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "Site\tKey\tGWh/line\tCells/line\tPrice/kWh\tCurrency\tPower cap (%)")
			for _, site := range refdata.AllSites {
				caps, err := refdata.ConstantsFor(site)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%.0f\t%.0f\t%.3f\t%s\t%.0f\n",
					site, site.Key(), caps.MaxEnergyPerLineGWh, caps.MaxCellsPerLine,
					caps.PricePerKWh, caps.LocalCurrency, caps.DefaultPowerCapPct)
			}
			return tw.Flush()
		},
	}
}
