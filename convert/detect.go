package convert

import (
	"archive/zip"
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"rtfhtml/common"
)

// headerSize is how much of the file is looked at when detecting type.
const headerSize = 512

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// detectUTF looks for byte order mark. UTF-32LE must be checked before
// UTF-16LE since the latter is a prefix of the former.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader returns reader producing UTF-8 with no byte order mark. Input
// without BOM is sniffed: valid UTF-8 is passed as is, anything else is
// decoded from the legacy code page charset detection settles on. Only the
// beginning of the input is looked at.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUTF8:
		return unicode.UTF8BOM.NewDecoder().Reader(r)
	case encUTF16BigEndian:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Reader(r)
	case encUTF16LittleEndian:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Reader(r)
	case encUTF32BigEndian:
		return utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder().Reader(r)
	case encUTF32LittleEndian:
		return utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder().Reader(r)
	}

	br := bufio.NewReaderSize(r, 4*headerSize)
	head, _ := br.Peek(4 * headerSize)
	if utf8.Valid(trimPartialRune(head)) {
		return br
	}
	e, _, _ := charset.DetermineEncoding(head, "text/plain")
	return e.NewDecoder().Reader(br)
}

// trimPartialRune drops incomplete UTF-8 sequence cut at the end of buffer.
func trimPartialRune(buf []byte) []byte {
	for i := len(buf) - 1; i >= 0 && i >= len(buf)-utf8.UTFMax; i-- {
		if utf8.RuneStart(buf[i]) {
			if !utf8.FullRune(buf[i:]) {
				return buf[:i]
			}
			break
		}
	}
	return buf
}

// documentFormat maps file name extension to input format.
func documentFormat(name string) (common.InputFmt, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return common.InputFmtJson, true
	case ".yaml", ".yml":
		return common.InputFmtYaml, true
	}
	return 0, false
}

// looksLikeDocument checks file header. Anything recognized as binary format
// is rejected, JSON must start with an object.
func looksLikeDocument(head []byte, format common.InputFmt, enc srcEncoding) bool {
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		return false
	}
	if enc != encUnknown {
		decoded, err := io.ReadAll(selectReader(bytes.NewReader(head), enc))
		if err != nil && len(decoded) == 0 {
			return false
		}
		head = decoded
	} else if bytes.IndexByte(head, 0) >= 0 {
		return false
	}

	text := bytes.TrimLeft(head, " \t\r\n")
	switch format {
	case common.InputFmtJson:
		return len(text) > 0 && text[0] == '{'
	case common.InputFmtYaml:
		return len(text) > 0 && !bytes.ContainsFunc(text, isControl)
	}
	return false
}

func isControl(r rune) bool {
	return r < 0x20 && r != '\t' && r != '\n' && r != '\r'
}

func readHeader(r io.Reader) ([]byte, error) {
	head := make([]byte, headerSize)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

// isArchiveFile reports whether file is zip archive. Extension is checked
// first, then content.
func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	head, err := readHeader(f)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// isDocumentFile reports whether file holds document model we could decode,
// its format and detected encoding.
func isDocumentFile(path string) (bool, common.InputFmt, srcEncoding, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, 0, encUnknown, err
	}
	defer f.Close()

	format, ok := documentFormat(path)
	if !ok {
		return false, 0, encUnknown, nil
	}
	head, err := readHeader(f)
	if err != nil {
		return false, 0, encUnknown, err
	}
	enc := detectUTF(head)
	if !looksLikeDocument(head, format, enc) {
		return false, 0, encUnknown, nil
	}
	return true, format, enc, nil
}

// isDocumentInArchive is isDocumentFile for archive member.
func isDocumentInArchive(f *zip.File) (bool, common.InputFmt, srcEncoding, error) {
	format, ok := documentFormat(f.FileHeader.Name)
	if !ok {
		return false, 0, encUnknown, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, 0, encUnknown, err
	}
	defer r.Close()

	head, err := readHeader(r)
	if err != nil {
		return false, 0, encUnknown, err
	}
	enc := detectUTF(head)
	if !looksLikeDocument(head, format, enc) {
		return false, 0, encUnknown, nil
	}
	return true, format, enc, nil
}
