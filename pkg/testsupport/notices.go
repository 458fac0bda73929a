package testsupport

import (
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/notify"
)

// NoticeRecorder is a notify.Notifier that keeps every notice it receives so
// tests can assert on them. Safe for concurrent use.
type NoticeRecorder struct {
	mu      sync.Mutex
	notices []notify.Notice
}

var _ notify.Notifier = (*NoticeRecorder)(nil)

func (r *NoticeRecorder) Notify(n notify.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the recorded notices.
func (r *NoticeRecorder) Notices() []notify.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notice(nil), r.notices...)
}

// Last returns the most recent notice.
func (r *NoticeRecorder) Last() (notify.Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return notify.Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}
