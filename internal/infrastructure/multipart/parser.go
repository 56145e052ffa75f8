// Package multipart extracts uploaded files from raw multipart/form-data
// bodies. It works on byte slices only and has no HTTP framework dependency,
// so the upload endpoint can hand it a body that arrived base64-encoded.
package multipart

import (
	"bytes"
	"encoding/base64"
	"errors"
	"mime"
	"regexp"
	"strings"
)

// FileFieldName is the form field the upload endpoint reads the file from
const FileFieldName = "file"

// DefaultContentType is reported when a file part declares no Content-Type
const DefaultContentType = "application/octet-stream"

var (
	// ErrMissingBoundary is returned when the Content-Type carries no boundary parameter
	ErrMissingBoundary = errors.New("no boundary found in content type")
	// ErrMalformedBody is returned when the body holds fewer than two boundary markers
	ErrMalformedBody = errors.New("malformed multipart body: expected at least two boundaries")
	// ErrNoFilePart is returned when no part is named "file" with a filename
	ErrNoFilePart = errors.New("no file part found in multipart body")
	// ErrInvalidEncoding is returned when a base64 transport body cannot be decoded
	ErrInvalidEncoding = errors.New("request body is not valid base64")
)

var (
	boundaryPattern = regexp.MustCompile(`(?i)boundary=(?:"([^"]+)"|([^;\s]+))`)
	namePattern     = regexp.MustCompile(`(?i)(?:^|;)\s*name=(?:"([^"]*)"|([^;\s]*))`)
	filenamePattern = regexp.MustCompile(`(?i)(?:^|;)\s*filename=(?:"([^"]*)"|([^;\s]*))`)
)

// Part is one section of a multipart body
type Part struct {
	Name        string
	FileName    string
	HasFileName bool
	ContentType string
	Headers     map[string]string // canonical lower-case keys
	Data        []byte
}

// IsFile reports whether the part carries a non-empty filename
func (p Part) IsFile() bool {
	return p.HasFileName && p.FileName != ""
}

// FilePart is the file extracted from an upload body
type FilePart struct {
	Data        []byte
	FileName    string
	ContentType string
}

// BoundaryFromContentType returns the boundary parameter of a
// multipart/form-data Content-Type header value.
func BoundaryFromContentType(contentType string) (string, error) {
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if b := params["boundary"]; b != "" {
			return b, nil
		}
		return "", ErrMissingBoundary
	}

	// mime rejects some values browsers and proxies still send
	// (e.g. unquoted boundaries containing '='), so fall back to matching.
	m := boundaryPattern.FindStringSubmatch(contentType)
	if m == nil {
		return "", ErrMissingBoundary
	}
	if m[1] != "" {
		return m[1], nil
	}
	if m[2] != "" {
		return m[2], nil
	}
	return "", ErrMissingBoundary
}

// DecodeBody returns the raw body, base64-decoding it first when the transport
// marked it as encoded. Line breaks inside the base64 text are ignored.
func DecodeBody(body []byte, base64Encoded bool) ([]byte, error) {
	if !base64Encoded {
		return body, nil
	}

	compact := bytes.Map(func(r rune) rune {
		if r == '\r' || r == '\n' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, body)

	out := make([]byte, base64.RawStdEncoding.DecodedLen(len(compact)))
	n, err := base64.StdEncoding.Decode(out, compact)
	if err != nil {
		// some clients strip the padding
		n, err = base64.RawStdEncoding.Decode(out, compact)
		if err != nil {
			return nil, ErrInvalidEncoding
		}
	}
	return out[:n], nil
}

// Parse splits body into its parts. Parts that have no header block are
// skipped. The returned Data slices are copies of the input.
func Parse(body []byte, boundary string) ([]Part, error) {
	if boundary == "" {
		return nil, ErrMissingBoundary
	}

	delimiter := []byte("--" + boundary)
	positions := indexAll(body, delimiter)
	if len(positions) < 2 {
		return nil, ErrMalformedBody
	}

	parts := make([]Part, 0, len(positions)-1)
	for i := 0; i < len(positions)-1; i++ {
		segment := body[positions[i]+len(delimiter) : positions[i+1]]
		part, ok := parsePart(segment)
		if ok {
			parts = append(parts, part)
		}
	}
	return parts, nil
}

// ParseFilePart returns the part named "file" that carries a filename.
func ParseFilePart(body []byte, boundary string) (*FilePart, error) {
	parts, err := Parse(body, boundary)
	if err != nil {
		return nil, err
	}
	return FilePartFrom(parts)
}

// FilePartFrom picks the upload file out of parts already split by Parse.
func FilePartFrom(parts []Part) (*FilePart, error) {
	for _, p := range parts {
		if p.Name != FileFieldName || !p.IsFile() {
			continue
		}
		contentType := p.ContentType
		if contentType == "" {
			contentType = DefaultContentType
		}
		return &FilePart{
			Data:        p.Data,
			FileName:    p.FileName,
			ContentType: contentType,
		}, nil
	}
	return nil, ErrNoFilePart
}

// FormValues returns the non-file fields of a multipart body
func FormValues(parts []Part) map[string]string {
	values := make(map[string]string)
	for _, p := range parts {
		if p.HasFileName || p.Name == "" {
			continue
		}
		values[p.Name] = string(p.Data)
	}
	return values
}

// parsePart decodes the bytes between two boundary markers.
func parsePart(segment []byte) (Part, bool) {
	// closing delimiter "--boundary--"
	if bytes.HasPrefix(segment, []byte("--")) {
		return Part{}, false
	}
	segment = trimLeadingNewline(segment)

	headerEnd, sepLen := headerSeparator(segment)
	if headerEnd <= 0 {
		return Part{}, false
	}

	part := Part{Headers: parseHeaders(string(segment[:headerEnd]))}
	part.Data = bytes.Clone(trimTrailingNewline(segment[headerEnd+sepLen:], sepLen == 4))
	if part.Data == nil {
		part.Data = []byte{}
	}

	disposition := part.Headers["content-disposition"]
	part.Name = matchParam(namePattern, disposition)
	if m := filenamePattern.FindStringSubmatch(disposition); m != nil {
		part.HasFileName = true
		part.FileName = firstNonEmpty(m[1], m[2])
	}
	part.ContentType = part.Headers["content-type"]
	return part, true
}

// headerSeparator finds the blank line that ends the header block, accepting
// both CRLF and bare LF line endings. The earliest separator wins.
func headerSeparator(segment []byte) (int, int) {
	crlf := bytes.Index(segment, []byte("\r\n\r\n"))
	lf := bytes.Index(segment, []byte("\n\n"))

	switch {
	case crlf < 0 && lf < 0:
		return -1, 0
	case crlf < 0:
		return lf, 2
	case lf < 0:
		return crlf, 4
	case lf < crlf:
		return lf, 2
	default:
		return crlf, 4
	}
}

func parseHeaders(block string) map[string]string {
	headers := make(map[string]string)
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return headers
}

func matchParam(pattern *regexp.Regexp, s string) string {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return firstNonEmpty(m[1], m[2])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func indexAll(data, sep []byte) []int {
	var positions []int
	offset := 0
	for {
		i := bytes.Index(data[offset:], sep)
		if i < 0 {
			return positions
		}
		positions = append(positions, offset+i)
		offset += i + len(sep)
	}
}

func trimLeadingNewline(b []byte) []byte {
	if bytes.HasPrefix(b, []byte("\r\n")) {
		return b[2:]
	}
	if bytes.HasPrefix(b, []byte("\n")) {
		return b[1:]
	}
	return b
}

// trimTrailingNewline drops the line break before the next boundary. A part
// framed with bare LF keeps a trailing '\r' that belongs to its payload.
func trimTrailingNewline(b []byte, crlf bool) []byte {
	if crlf && bytes.HasSuffix(b, []byte("\r\n")) {
		return b[:len(b)-2]
	}
	return bytes.TrimSuffix(b, []byte("\n"))
}
