package refdata

import _ "embed"

// Embedded reference dataset. The files are versioned via their
// schema_version field and validated against supportedDataRange at load.

//go:embed data/cells.json
var rawCellsJSON []byte

//go:embed data/sources.json
var rawSourcesJSON []byte
