package constant

import _ "embed"

// DefaultDirectory is the built-in provider directory in "label,url" line format.
// It is used whenever no override is configured.
//
//go:embed directory.txt
var DefaultDirectory string
