package escrowrail

import _ "embed"

// Version is the release version of escrowrail.
//
//go:embed VERSION
var Version string
