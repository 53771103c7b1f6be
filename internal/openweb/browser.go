package openweb

import "github.com/pkg/browser"

// BrowserOpener launches a URL in the user's default browser.
type BrowserOpener interface {
	OpenURL(targetURL string) error
}

// SystemBrowserOpener opens URLs with the operating system browser launcher.
type SystemBrowserOpener struct{}

// NewSystemBrowserOpener constructs a SystemBrowserOpener.
func NewSystemBrowserOpener() *SystemBrowserOpener {
	return &SystemBrowserOpener{}
}

// OpenURL launches the target URL in the default browser.
func (opener *SystemBrowserOpener) OpenURL(targetURL string) error {
	return browser.OpenURL(targetURL)
}
