// Package pathutils normalizes user-supplied filesystem paths before they are
// handed to repository discovery.
package pathutils
