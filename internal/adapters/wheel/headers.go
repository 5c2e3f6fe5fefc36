package wheel

import (
	"bufio"
	"errors"
	"io"
	"net/textproto"
	"os"
)

// ReadHeaders parses the RFC 822 style header block used by METADATA, PKG-INFO and WHEEL.
// The body following the first blank line is ignored.
func ReadHeaders(r io.Reader) (textproto.MIMEHeader, error) {
	tp := textproto.NewReader(bufio.NewReader(r))
	header, err := tp.ReadMIMEHeader()
	if err != nil && !errors.Is(err, io.EOF) {
		return header, err
	}
	return header, nil
}

// ReadHeaderFile is ReadHeaders on the file at path.
func ReadHeaderFile(path string) (textproto.MIMEHeader, error) {
	// #nosec G304 -- metadata paths come from the environment scan
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadHeaders(f)
}
