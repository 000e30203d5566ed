package plotly

import (
	"github.com/pkg/browser"
)

// SystemBrowser opens files with the platform's default handler.
type SystemBrowser struct {
	open func(path string) error
}

func NewSystemBrowser() *SystemBrowser {
	return &SystemBrowser{open: browser.OpenFile}
}

func (b *SystemBrowser) Open(path string) error {
	return b.open(path)
}
