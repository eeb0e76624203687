package notification

import (
	"context"
	"sync"
)

// Recorder collects the notices raised while serving one request.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func NewRecorder() *Recorder {
	return &Recorder{notices: []Notice{}}
}

func (r *Recorder) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	notices := make([]Notice, len(r.notices))
	copy(notices, r.notices)
	return notices
}

func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

type recorderKey struct{}

func WithRecorder(c context.Context, r *Recorder) context.Context {
	return context.WithValue(c, recorderKey{}, r)
}

func RecorderFromContext(c context.Context) (*Recorder, bool) {
	r, ok := c.Value(recorderKey{}).(*Recorder)
	return r, ok
}

// Context forwards notices to the Recorder attached to the context, if any.
type Context struct{}

func (Context) Notify(c context.Context, n Notice) {
	if r, ok := RecorderFromContext(c); ok {
		r.Notify(c, n)
	}
}
