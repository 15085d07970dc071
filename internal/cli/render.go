package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agrata/carbonsense/internal/engine"
	"github.com/agrata/carbonsense/internal/equiv"
)

// maxMaterialRows caps the bill-of-materials table; the full list is
// available via json and csv output.
const maxMaterialRows = 15

// renderJSON writes the full report as indented JSON.
func renderJSON(w io.Writer, report *engine.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// renderCSV writes the per-year rows, a cumulative row, and the aggregate
// bill of materials as two CSV sections separated by a blank line.
func renderCSV(w io.Writer, report *engine.Report) error {
	cw := csv.NewWriter(w)

	header := []string{
		"year", "energy_gwh", "total_cells",
		"energy_co2_tons", "material_co2_tons", "total_co2_tons",
		"water_m3", "cost_gbp",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, year := range report.Years {
		row := []string{
			strconv.Itoa(year.Year),
			f(year.EnergyGWh), f(year.TotalCells),
			f(year.EnergyCO2), f(year.MaterialCO2), f(year.TotalCO2),
			f(year.TotalWater), f(year.CostGBP),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cum := report.Cumulative
	if err := cw.Write([]string{
		"cumulative",
		f(cum.EnergyGWh), f(cum.TotalCells),
		f(cum.EnergyCO2), f(cum.MaterialCO2), f(cum.TotalCO2),
		f(cum.TotalWater), f(cum.CostGBP),
	}); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	mw := csv.NewWriter(w)
	if err := mw.Write([]string{"material", "unit", "quantity"}); err != nil {
		return err
	}
	for _, mat := range report.Materials {
		if err := mw.Write([]string{mat.Key.Name, mat.Key.Unit, f(mat.Quantity)}); err != nil {
			return err
		}
	}
	mw.Flush()
	return mw.Error()
}

// renderTable writes the human-readable report. With styled set, section
// headers and totals get lipgloss color and weight; otherwise the output is
// plain text suitable for pipes and files.
func renderTable(w io.Writer, report *engine.Report, styled bool) error {
	p := message.NewPrinter(language.English)

	heading := func(s string) string { return s }
	emphasis := func(s string) string { return s }
	if styled {
		headingStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
		emphasisStyle := lipgloss.NewStyle().Bold(true)
		heading = func(s string) string { return headingStyle.Render(s) }
		emphasis = func(s string) string { return emphasisStyle.Render(s) }
	}

	fmt.Fprintf(w, "Run %s (schema %s)\n\n", report.RunID, report.SchemaVersion)

	fmt.Fprintln(w, heading("PRODUCTION AND IMPACT BY YEAR"))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Year\tEnergy (GWh)\tCells\tEnergy CO2 (t)\tMaterial CO2 (t)\tTotal CO2 (t)\tWater (m3)\tCost (GBP)")
	for _, year := range report.Years {
		fmt.Fprintln(tw, p.Sprintf("%d\t%.1f\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f",
			year.Year, year.EnergyGWh, year.TotalCells,
			year.EnergyCO2, year.MaterialCO2, year.TotalCO2,
			year.TotalWater, year.CostGBP))
	}
	cum := report.Cumulative
	fmt.Fprintln(tw, emphasis(p.Sprintf("Total\t%.1f\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f",
		cum.EnergyGWh, cum.TotalCells,
		cum.EnergyCO2, cum.MaterialCO2, cum.TotalCO2,
		cum.TotalWater, cum.CostGBP)))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading("EFFICIENCY"))
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Period\tCells/GWh\tCO2/cell (kg)\tMWh/cell")
	for _, row := range report.Efficiency {
		fmt.Fprintln(tw, p.Sprintf("%s\t%.1f\t%.2f\t%.3f",
			row.Label, row.CellsPerGWh, row.CO2PerCellKg, row.MWhPerCell))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading("CUMULATIVE MATERIAL DEMAND"))
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Material\tUnit\tQuantity")
	shown := report.Materials
	if len(shown) > maxMaterialRows {
		shown = shown[:maxMaterialRows]
	}
	for _, mat := range shown {
		fmt.Fprintln(tw, p.Sprintf("%s\t%s\t%.0f", mat.Key.Name, mat.Key.Unit, mat.Quantity))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if hidden := len(report.Materials) - len(shown); hidden > 0 {
		fmt.Fprintf(w, "... and %d more (use --output csv for the full list)\n", hidden)
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, heading("WARNINGS"))
		for _, warn := range report.Warnings {
			fmt.Fprintln(w, warn.String())
		}
	}

	if eq := equiv.FromTons(cum.TotalCO2); !eq.IsEmpty {
		fmt.Fprintln(w)
		fmt.Fprintln(w, eq.DisplayText)
	}

	return nil
}
