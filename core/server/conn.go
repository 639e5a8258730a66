package server

import (
	"bufio"
	"bytes"
	"io"
	"net/http"
)

// connWriter buffers a single response so it can be sent with an exact
// Content-Length once the pipeline has finished.
type connWriter struct {
	req    *http.Request
	header http.Header
	status int
	body   bytes.Buffer
}

func newConnWriter(req *http.Request) *connWriter {
	return &connWriter{
		req:    req,
		header: make(http.Header),
	}
}

func (w *connWriter) Header() http.Header {
	return w.header
}

func (w *connWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *connWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

// reset discards everything buffered so far. Nothing reaches the socket
// before flush, so a failed request can still be answered cleanly.
func (w *connWriter) reset() {
	w.header = make(http.Header)
	w.status = 0
	w.body.Reset()
}

// flush serializes the buffered response as HTTP/1.1 with Connection: close.
func (w *connWriter) flush(dst io.Writer) (int64, error) {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}

	resp := &http.Response{
		StatusCode:    status,
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        w.header,
		ContentLength: int64(w.body.Len()),
		Close:         true,
		Request:       w.req,
	}
	n := resp.ContentLength
	if n > 0 {
		resp.Body = io.NopCloser(&w.body)
	}

	bw := bufio.NewWriter(dst)
	if err := resp.Write(bw); err != nil {
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}
	return n, nil
}

// writeStatus sends a bare plain-text response for requests that never
// reached the pipeline.
func writeStatus(dst io.Writer, status int) error {
	w := newConnWriter(nil)
	w.header.Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(http.StatusText(status)))
	_, err := w.flush(dst)
	return err
}
