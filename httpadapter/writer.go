package httpadapter

import (
	"net/http"
	"slices"
	"sync"
)

// responseWriter tracks response state and serializes access coming from
// deferred work. Handlers set headers on a pending map that is committed to
// the underlying writer when they write or hand the request on. Once sealed,
// handler writes are dropped and Header returns a throwaway map: the bridge
// owns the response from then on, and net/http forbids using a ResponseWriter
// after ServeHTTP returns.
type responseWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	header  http.Header
	written bool
	sealed  bool
	status  int
	wrote   chan struct{}
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		header:         w.Header().Clone(),
		wrote:          make(chan struct{}),
	}
}

// Header returns the pending header map until the response is written or sealed.
func (w *responseWriter) Header() http.Header {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.written || w.sealed {
		return make(http.Header)
	}
	return w.header
}

func (w *responseWriter) WriteHeader(status int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.sealed {
		return
	}
	w.commitLocked()
	w.writeHeaderLocked(status)
}

func (w *responseWriter) writeHeaderLocked(status int) {
	if w.written {
		return
	}
	w.status = status
	w.written = true
	close(w.wrote)
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.sealed {
		return 0, ErrResponseDetached
	}
	w.commitLocked()
	return w.writeLocked(b)
}

func (w *responseWriter) writeLocked(b []byte) (int, error) {
	if !w.written {
		w.writeHeaderLocked(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Written returns true if the response status has been sent.
func (w *responseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Status returns the HTTP status code of the response.
func (w *responseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *responseWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.sealed {
		return
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		if !w.written {
			w.commitLocked()
			w.writeHeaderLocked(http.StatusOK)
		}
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// commit copies the pending headers to the underlying writer. Called only
// once the handler that set them has completed.
func (w *responseWriter) commit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.commitLocked()
}

func (w *responseWriter) commitLocked() {
	if w.written || w.sealed {
		return
	}

	dst := w.ResponseWriter.Header()
	clear(dst)
	for k, v := range w.header {
		dst[k] = slices.Clone(v)
	}
}

// headerValue reads a committed response header under the writer lock.
func (w *responseWriter) headerValue(key string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ResponseWriter.Header().Get(key)
}

// seal stops handler access and hands the response to the caller. Pending
// headers are not committed, since an abandoned handler may still hold them.
// Returns nil if a response was already written.
func (w *responseWriter) seal() http.ResponseWriter {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.sealed = true
	if w.written {
		return nil
	}
	return &ownedWriter{rw: w}
}

// finish commits pending headers and seals the writer when ServeHTTP returns.
func (w *responseWriter) finish() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.commitLocked()
	w.sealed = true
}

// ownedWriter writes a sealed response on behalf of the bridge.
type ownedWriter struct {
	rw *responseWriter
}

func (o *ownedWriter) Header() http.Header {
	return o.rw.ResponseWriter.Header()
}

func (o *ownedWriter) WriteHeader(status int) {
	o.rw.mu.Lock()
	defer o.rw.mu.Unlock()
	o.rw.writeHeaderLocked(status)
}

func (o *ownedWriter) Write(b []byte) (int, error) {
	o.rw.mu.Lock()
	defer o.rw.mu.Unlock()
	return o.rw.writeLocked(b)
}

func (o *ownedWriter) Written() bool {
	return o.rw.Written()
}

func (o *ownedWriter) Unwrap() http.ResponseWriter {
	return o.rw.ResponseWriter
}

// alreadyWritten reports whether w already sent a response.
func alreadyWritten(w http.ResponseWriter) bool {
	if ww, ok := w.(interface{ Written() bool }); ok {
		return ww.Written()
	}
	return false
}
