package xaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"golang.org/x/net/html/charset"

	"github.com/MacroPower/xamlscale/pkg/scaling"
	"github.com/MacroPower/xamlscale/pkg/xamlerrors"
)

const defaultFileMode fs.FileMode = 0o644

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	encodingDecl = regexp.MustCompile(`encoding\s*=\s*("[^"]*"|'[^']*')`)
)

// Document is a parsed XAML document.
//
// Serializing a Document reproduces the byte order mark of its source, and its
// CRLF line endings when every line uses them. Tabs and line breaks inside
// attribute values are written as character references. Documents decoded from a non-UTF-8 charset are written back
// as UTF-8.
type Document struct {
	*etree.Document

	bom  bool
	crlf bool
}

// Parse parses data into a [Document].
func Parse(data []byte) (*Document, error) {
	d := &Document{Document: etree.NewDocument()}
	d.ReadSettings.CharsetReader = charset.NewReaderLabel
	d.WriteSettings.CanonicalText = true
	d.WriteSettings.CanonicalAttrVal = true

	if bytes.HasPrefix(data, utf8BOM) {
		d.bom = true
		data = data[len(utf8BOM):]
	}

	d.crlf = usesCRLF(data)

	if err := d.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %w", xamlerrors.ErrParse, err)
	}

	if d.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", xamlerrors.ErrParse)
	}

	d.declareUTF8()

	return d, nil
}

// usesCRLF reports whether every line of data ends with CRLF.
func usesCRLF(data []byte) bool {
	n := bytes.Count(data, []byte("\r\n"))

	return n > 0 && n == bytes.Count(data, []byte("\n"))
}

// ReadFile reads and parses the document at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", xamlerrors.ErrReadFile, path, err)
	}

	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}

	return d, nil
}

// declareUTF8 updates a non-UTF-8 encoding in the XML declaration, since the
// document is always serialized as UTF-8.
func (d *Document) declareUTF8() {
	for _, t := range d.Child {
		pi, ok := t.(*etree.ProcInst)
		if !ok || pi.Target != "xml" {
			continue
		}

		m := encodingDecl.FindStringSubmatch(pi.Inst)
		if m == nil {
			return
		}

		label := strings.ToLower(strings.Trim(m[1], `"'`))
		if label == "utf-8" || label == "utf8" {
			return
		}

		pi.Inst = encodingDecl.ReplaceAllString(pi.Inst, `encoding="utf-8"`)

		return
	}
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if d.bom {
		buf.Write(utf8BOM)
	}

	if _, err := d.Document.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}

	out := buf.Bytes()
	if d.crlf {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}

	return out, nil
}

// WriteTo serializes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := d.Bytes()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("%w: %w", xamlerrors.ErrWrite, err)
	}

	return int64(n), nil
}

// WriteFile serializes the document to path.
//
// The document is written to a temporary file in the destination directory,
// which then replaces path. If path is a symbolic link, its target is
// replaced. An existing file keeps its permissions.
func (d *Document) WriteFile(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return fmt.Errorf("%w %q: %w", xamlerrors.ErrWriteFile, path, err)
	}

	target, err := resolveLink(path)
	if err != nil {
		return fmt.Errorf("%w %q: %w", xamlerrors.ErrWriteFile, path, err)
	}

	if err := writeFileAtomic(target, data); err != nil {
		return fmt.Errorf("%w %q: %w", xamlerrors.ErrWriteFile, path, err)
	}

	return nil
}

func resolveLink(path string) (string, error) {
	fi, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return path, nil
	}
	if err != nil {
		return "", err //nolint:wrapcheck // Wrapped by caller.
	}

	if fi.Mode()&fs.ModeSymlink == 0 {
		return path, nil
	}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("resolve link: %w", err)
	}

	return target, nil
}

func writeFileAtomic(path string, data []byte) error {
	mode := defaultFileMode

	fi, err := os.Stat(path)
	switch {
	case err == nil && fi.IsDir():
		return fmt.Errorf("%s is a directory", path)
	case err == nil:
		mode = fi.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return err //nolint:wrapcheck // Wrapped by caller.
	}

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}

	if err := writeAndClose(f, data, mode); err != nil {
		_ = os.Remove(tmp)

		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("replace file: %w", err)
	}

	return nil
}

func writeAndClose(f *os.File, data []byte, mode fs.FileMode) error {
	_, err := f.Write(data)
	if err == nil {
		err = f.Chmod(mode)
	}
	if err == nil {
		err = f.Sync()
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return fmt.Errorf("write temporary file: %w", err)
	}

	return nil
}

// RescaleFile rescales the document at in by f and writes the result to out,
// which may be the same path. Nothing is written if in cannot be read or
// parsed.
func (r *Rescaler) RescaleFile(in, out string, f scaling.Factor) (Stats, error) {
	doc, err := ReadFile(in)
	if err != nil {
		return Stats{}, err
	}

	stats := r.Rescale(doc, f)

	if err := doc.WriteFile(out); err != nil {
		return stats, err
	}

	return stats, nil
}
