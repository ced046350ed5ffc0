package sorter

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/acm19/exifsort/internal/logger"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rwcarlsen/goexif/exif"
)

// nativeTags maps the EXIF fields read natively to exiftool's group-qualified names.
var nativeTags = []struct {
	field exif.FieldName
	tag   string
}{
	{exif.DateTimeOriginal, "EXIF:DateTimeOriginal"},
	{exif.DateTimeDigitized, "EXIF:CreateDate"},
	{exif.DateTime, "EXIF:ModifyDate"},
	{exif.Make, "EXIF:Make"},
	{exif.Model, "EXIF:Model"},
}

// NativeProvider reads a subset of tags without exiftool: EXIF dates from
// JPEG and TIFF based files, and the MIME type from the file content.
type NativeProvider struct{}

// NewNativeProvider creates a NativeProvider.
func NewNativeProvider() *NativeProvider {
	return &NativeProvider{}
}

// Name identifies the provider in logs.
func (p *NativeProvider) Name() string {
	return "native"
}

// ReadMetadata returns the tags of every path that could be opened. Files
// without EXIF data still get their MIME type.
func (p *NativeProvider) ReadMetadata(paths []string) map[string]Metadata {
	result := make(map[string]Metadata, len(paths))
	for _, path := range paths {
		md, err := p.read(path)
		if err != nil {
			logger.Warn("Failed to read metadata", "file", filepath.Base(path), "error", err)
			continue
		}
		result[path] = md
	}
	return result
}

func (p *NativeProvider) read(path string) (Metadata, error) {
	md := Metadata{"SourceFile": path}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, err
	}
	md[mimeTypeTag] = strings.TrimSpace(strings.SplitN(mime.String(), ";", 2)[0])

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		logger.Debug("No EXIF data", "file", filepath.Base(path), "error", err)
		return md, nil
	}
	for _, nt := range nativeTags {
		tag, err := x.Get(nt.field)
		if err != nil {
			continue
		}
		if val, err := tag.StringVal(); err == nil {
			md[nt.tag] = strings.TrimSpace(val)
		}
	}
	return md, nil
}
