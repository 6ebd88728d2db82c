package worker

import "sync"

// _tailLimit bounds how much recent process output is retained for exit
// diagnostics.
const _tailLimit = 8 * 1024

// tailBuffer keeps the most recent process output. The exit handler reads it
// to classify the failure and to preserve a transcript for GivenUp sessions.
type tailBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func newTailBuffer() *tailBuffer {
	return &tailBuffer{}
}

func (t *tailBuffer) write(chunk []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, chunk...)
	if len(t.buf) > _tailLimit {
		t.buf = t.buf[len(t.buf)-_tailLimit:]
	}
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
