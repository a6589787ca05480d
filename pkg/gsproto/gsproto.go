// pkg/gsproto/gsproto.go

// Package gsproto is the request/response wire protocol (spec components
// T1 and T2): one record per line, tab-separated fields, NUL-terminated,
// matching gitstatusd's own line protocol from the original C++ tool
// rather than any general-purpose codec — there is no framing beyond
// "read to NUL, split on tab".
package gsproto

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/dritter/gitstatusd/pkg/gserr"
)

// Request is one parsed query: which working directory to report status
// for, tagged with an opaque caller-supplied id.
type Request struct {
	ID   string
	Dir  string
	Diag bool
}

// Reader parses NUL-terminated, tab-separated request records from an
// underlying stream.
type Reader struct {
	br *bufio.Reader
}

// NewReader wraps r for request parsing.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Read returns the next request, or io.EOF once the stream is exhausted.
// A malformed record (fewer than two fields, including an empty record)
// is reported as a gserr.ErrParse error; callers drop the
// record silently per spec.md §7 rather than crash the daemon over one
// bad line.
func (r *Reader) Read() (Request, error) {
	line, err := r.br.ReadString(0)
	if err != nil && err != io.EOF {
		return Request{}, gserr.Wrap(gserr.KindIO, "reading request", err)
	}
	if err == io.EOF && line == "" {
		return Request{}, io.EOF
	}
	line = strings.TrimSuffix(line, "\x00")

	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return Request{}, gserr.Parsef("request has %d fields, want at least 2", len(fields))
	}

	req := Request{ID: fields[0], Dir: fields[1]}
	if len(fields) >= 3 && fields[2] == "1" {
		req.Diag = true
	}
	return req, nil
}

// Response is one full status record, field order fixed by spec.md §6.
type Response struct {
	ID             string
	IsRepo         bool
	Workdir        string
	Commit         string
	LocalBranch    string
	UpstreamBranch string
	RemoteURL      string
	RepoState      string
	HasStaged      bool
	HasUnstaged    int // -1, 0, 1
	HasUntracked   int // -1, 0, 1
	Ahead          int
	Behind         int
	NumStashes     int
	Tag            string
}

// Writer serializes Responses in the wire format on an underlying stream.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w for response writing.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write emits resp as one NUL-terminated, tab-separated record. When
// resp.IsRepo is false, only the id and is_repo fields are written, per
// spec.md §6 field 2's "else 0 and no further fields".
func (w *Writer) Write(resp Response) error {
	var b strings.Builder
	b.WriteString(resp.ID)
	b.WriteByte('\t')
	if !resp.IsRepo {
		b.WriteByte('0')
		b.WriteByte(0)
		_, err := io.WriteString(w.w, b.String())
		return err
	}

	b.WriteByte('1')
	fields := []string{
		resp.Workdir,
		resp.Commit,
		resp.LocalBranch,
		resp.UpstreamBranch,
		resp.RemoteURL,
		resp.RepoState,
		boolField(resp.HasStaged),
		strconv.Itoa(resp.HasUnstaged),
		strconv.Itoa(resp.HasUntracked),
		strconv.Itoa(resp.Ahead),
		strconv.Itoa(resp.Behind),
		strconv.Itoa(resp.NumStashes),
		resp.Tag,
	}
	for _, f := range fields {
		b.WriteByte('\t')
		b.WriteString(f)
	}
	b.WriteByte(0)

	_, err := io.WriteString(w.w, b.String())
	return err
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
