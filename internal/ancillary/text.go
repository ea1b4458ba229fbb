package ancillary

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/pkg/errors"
)

// TextRecord is the decoded payload of a tEXt or iTXt chunk, grounded on
// XC-Zero-simple-png/chunk.go's TEXT{Keyword,Separator,Text} struct shape
// (adapted from its mutate-the-receiver Parse method into a pure function).
type TextRecord struct {
	Keyword         string
	Text            string
	Compressed      bool
	LanguageTag     string
	TranslatedKey   string
}

// ZTextRecord is the decoded payload of a zTXt chunk: keyword plus
// deflate-compressed Latin-1 text, grounded on
// XC-Zero-simple-png/chunk.go's ZTXT struct.
type ZTextRecord struct {
	Keyword           string
	CompressionMethod uint8
	Text              string
}

const nul = 0x00

func decodeText(_ Header, c Chunk) (interface{}, error) {
	i := bytes.IndexByte(c.Data, nul)
	if i < 0 || i == 0 || i > 79 {
		return nil, errors.New("tEXt: missing or oversized keyword")
	}
	return TextRecord{Keyword: string(c.Data[:i]), Text: string(c.Data[i+1:])}, nil
}

func decodeZTXt(_ Header, c Chunk) (interface{}, error) {
	i := bytes.IndexByte(c.Data, nul)
	if i < 0 || i == 0 || i > 79 {
		return nil, errors.New("zTXt: missing or oversized keyword")
	}
	if i+1 >= len(c.Data) {
		return nil, errors.New("zTXt: missing compression method byte")
	}
	method := c.Data[i+1]
	if method != 0 {
		return nil, errors.New("zTXt: unknown compression method")
	}
	text, err := inflateLatin1(c.Data[i+2:])
	if err != nil {
		return nil, err
	}
	return ZTextRecord{Keyword: string(c.Data[:i]), CompressionMethod: method, Text: text}, nil
}

func decodeIText(_ Header, c Chunk) (interface{}, error) {
	fields := bytes.SplitN(c.Data, []byte{nul}, 2)
	if len(fields) != 2 || len(fields[0]) == 0 {
		return nil, errors.New("iTXt: missing keyword")
	}
	keyword := string(fields[0])
	rest := fields[1]
	if len(rest) < 2 {
		return nil, errors.New("iTXt: truncated header")
	}
	compressionFlag := rest[0]
	compressionMethod := rest[1]
	rest = rest[2:]

	parts := bytes.SplitN(rest, []byte{nul}, 3)
	if len(parts) != 3 {
		return nil, errors.New("iTXt: malformed language/translated-keyword fields")
	}
	lang, translated, textBytes := parts[0], parts[1], parts[2]

	var text string
	if compressionFlag != 0 {
		if compressionMethod != 0 {
			return nil, errors.New("iTXt: unknown compression method")
		}
		decompressed, err := inflateLatin1(textBytes)
		if err != nil {
			return nil, err
		}
		text = decompressed
	} else {
		text = string(textBytes)
	}

	return TextRecord{
		Keyword:       keyword,
		Text:          text,
		Compressed:    compressionFlag != 0,
		LanguageTag:   string(lang),
		TranslatedKey: string(translated),
	}, nil
}

func inflateLatin1(b []byte) (string, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return "", errors.Wrap(err, "inflate text")
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return "", errors.Wrap(err, "inflate text")
	}
	return string(out), nil
}
