// Package responsewriter records what a handler sent so the access log,
// metrics and tracing middleware can report it afterwards.
package responsewriter

import "net/http"

// Recorder is an http.ResponseWriter that remembers the status and body size.
type Recorder struct {
	http.ResponseWriter
	status int // 0 until the status line is sent
	size   int64
}

// Wrap returns a Recorder writing through to w.
func Wrap(w http.ResponseWriter) *Recorder {
	return &Recorder{ResponseWriter: w}
}

// WriteHeader sends the status line once; later calls are dropped, as
// net/http itself would only warn about them.
func (r *Recorder) WriteHeader(code int) {
	if r.status != 0 {
		return
	}
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *Recorder) Write(b []byte) (int, error) {
	r.WriteHeader(http.StatusOK)
	n, err := r.ResponseWriter.Write(b)
	r.size += int64(n)
	return n, err
}

// Flush commits a 200 if nothing was sent yet.
func (r *Recorder) Flush() {
	r.WriteHeader(http.StatusOK)
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Status is the code sent to the client. A handler that wrote nothing
// produced an implicit 200.
func (r *Recorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Size is the number of body bytes written.
func (r *Recorder) Size() int64 { return r.size }

// Failed reports a 5xx response.
func (r *Recorder) Failed() bool { return r.Status() >= http.StatusInternalServerError }

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *Recorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
