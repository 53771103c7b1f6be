// Package openweb resolves the web URL of a repository's remote and opens it
// in the user's browser.
package openweb
