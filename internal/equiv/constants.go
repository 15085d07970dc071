package equiv

// EPA Formula Constants (2024 Edition)
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
// Each constant is the kg CO2e equivalent for one unit of the activity; the
// equivalency is kg_CO2e / factor.
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for an average passenger
	// vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPATreeSeedlingFactor is kg CO2e absorbed per tree seedling grown
	// for 10 years.
	EPATreeSeedlingFactor = 60.0

	// EPAHomeYearFactor is kg CO2e per year of average US home
	// electricity use (EPAHomeDayFactor of 18.3 over 365 days).
	EPAHomeYearFactor = 18.3 * 365
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the minimum kg CO2e worth showing
	// equivalencies for. Below it the ratios are meaninglessly small.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches formatting to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches formatting to "~X.X billion".
	BillionThreshold = 1_000_000_000
)
