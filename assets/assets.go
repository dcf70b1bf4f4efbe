// Package assets holds static files embedded into the server binary.
package assets

import _ "embed"

// Index is the landing page served at the root path.
//
//go:embed index.html
var Index []byte
