// Package asset holds company equipment, vehicles, equipment assignments and
// software licenses.
package asset
