package model

// AggregateYear sums per-site results into a year total. Numeric fields add
// field-wise; material maps merge by (name, unit) key. Site order in the
// input is preserved in the output for rendering.
func AggregateYear(year int, sites []SiteResult) YearResult {
	out := YearResult{
		Year:      year,
		Sites:     sites,
		Materials: map[MaterialKey]float64{},
	}

	for i := range sites {
		site := &sites[i]
		out.EnergyGWh += site.EnergyGWh
		out.TotalCells += site.TotalCells
		out.EnergyCO2 += site.EnergyCO2
		out.MaterialCO2 += site.MaterialCO2
		out.TotalCO2 += site.TotalCO2
		out.TotalWater += site.TotalWater
		out.CostGBP += site.CostGBP

		for key, qty := range site.Materials {
			out.Materials[key] += qty
		}
	}

	return out
}

// Add folds a year into the cumulative totals and returns the new value.
// The receiver is not mutated: material maps are copied, so a Cumulative
// can be forked and years re-applied in any order with identical results
// (summation is commutative and associative field-wise).
func (c Cumulative) Add(year YearResult) Cumulative {
	next := c
	next.Years++
	next.EnergyGWh += year.EnergyGWh
	next.TotalCells += year.TotalCells
	next.EnergyCO2 += year.EnergyCO2
	next.MaterialCO2 += year.MaterialCO2
	next.TotalCO2 += year.TotalCO2
	next.TotalWater += year.TotalWater
	next.CostGBP += year.CostGBP

	next.Materials = make(map[MaterialKey]float64, len(c.Materials)+len(year.Materials))
	for key, qty := range c.Materials {
		next.Materials[key] = qty
	}
	for key, qty := range year.Materials {
		next.Materials[key] += qty
	}

	return next
}
