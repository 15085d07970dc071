package refdata

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by reference-data lookups and parsing. All are
// comparable with errors.Is().
var (
	// ErrUnknownSite indicates a site name not in the closed site set.
	ErrUnknownSite = constError("unknown site")

	// ErrUnknownCellType indicates a cell-type name not in the closed set.
	ErrUnknownCellType = constError("unknown cell type")

	// ErrUnknownEnergyMix indicates an unrecognized energy-mix name.
	ErrUnknownEnergyMix = constError("unknown energy mix")

	// ErrInvalidSiliconPct indicates a silicon percentage outside the
	// allowed discrete set (3, 5, 10, 15, 20).
	ErrInvalidSiliconPct = constError("invalid silicon percentage")

	// ErrDatasetVersion indicates the embedded dataset's schema_version is
	// outside the range this binary supports.
	ErrDatasetVersion = constError("unsupported reference dataset version")

	// ErrDatasetCorrupt indicates the embedded dataset failed to parse or
	// failed an internal consistency check.
	ErrDatasetCorrupt = constError("corrupt reference dataset")
)
