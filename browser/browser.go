package browser

import (
	"sync"

	pkgbrowser "github.com/pkg/browser"
)

// Opener opens a URL in the user's browser. It does not wait for the browser to close.
type Opener interface {
	Open(url string) error
}

// System opens URLs with the platform's default browser
type System struct{}

var _ Opener = System{}

func (System) Open(url string) error {
	return pkgbrowser.OpenURL(url)
}

// Recorder remembers URLs instead of opening them. Err, when set, is returned from Open.
type Recorder struct {
	Err  error
	urls []string
	lock sync.Mutex
}

var _ Opener = (*Recorder)(nil)

func (r *Recorder) Open(url string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.urls = append(r.urls, url)
	return r.Err
}

func (r *Recorder) URLs() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.urls...)
}
