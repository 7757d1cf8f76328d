package hwp5

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/iyulab/go-unhwp/bodytext"
	"github.com/iyulab/go-unhwp/deflate"
	"github.com/iyulab/go-unhwp/docinfo"
	"github.com/iyulab/go-unhwp/hwperr"
	"github.com/iyulab/go-unhwp/model"
	"github.com/iyulab/go-unhwp/ole2"
	"github.com/iyulab/go-unhwp/options"
)

// Parse reads a full BinaryCompound document from an already-opened OLE2
// reader and returns the unified document model.
//
// Order is significant and matches the container's own dependency chain:
// the FileHeader is read first (and rejected if encrypted/DRM-protected),
// then DocInfo (populating the style registry every section needs), then
// each BodyText/SectionN in ascending index, then BinData resources, and
// finally the optional PrvText preview.
func Parse(r *ole2.Reader, opts options.ParseOptions) (*model.Document, error) {
	log := opts.Log()
	headerBytes, err := r.OpenStream("FileHeader")
	if err != nil {
		return nil, hwperr.Wrap(hwperr.KindMissingComponent, "FileHeader", err)
	}
	header, err := ParseFileHeader(headerBytes)
	if err != nil {
		return nil, err
	}
	if header.Properties.Encrypted {
		return nil, hwperr.New(hwperr.KindEncrypted, "")
	}
	if header.Properties.DRM || header.Properties.CertificateDRM {
		return nil, hwperr.New(hwperr.KindEncrypted, "DRM flag set")
	}

	doc := model.NewDocument()
	doc.Metadata.FormatVersion = header.Version.String()
	doc.Metadata.Restricted = header.Properties.Distribution

	docInfoRaw, err := r.OpenStream("DocInfo")
	if err != nil {
		return nil, hwperr.Wrap(hwperr.KindMissingComponent, "DocInfo", err)
	}
	docInfoData, err := maybeInflate(docInfoRaw, header.Properties.Compressed)
	if err != nil {
		return nil, err
	}
	binDataCount, err := docinfo.Parse(docInfoData, doc.Styles)
	if err != nil {
		return nil, err
	}

	if err := wireBinDataFilenames(r, doc, binDataCount); err != nil {
		return nil, err
	}

	sectionIdx := 0
	for {
		name := fmt.Sprintf("BodyText/Section%d", sectionIdx)
		if !r.Exists(name) {
			break
		}
		raw, err := r.OpenStream(name)
		if err != nil {
			return nil, hwperr.Wrap(hwperr.KindMissingComponent, name, err)
		}
		data, err := maybeInflate(raw, header.Properties.Compressed)
		if err != nil {
			if opts.ErrorMode == options.Lenient {
				log.WithField("section", name).WithError(err).Warn("skipping unreadable section")
				sectionIdx++
				continue
			}
			return nil, err
		}
		section, err := bodytext.ParseSection(data, sectionIdx, doc.Styles)
		if err != nil {
			if opts.ErrorMode == options.Lenient {
				log.WithField("section", name).WithError(err).Warn("skipping malformed section")
				sectionIdx++
				continue
			}
			return nil, err
		}
		doc.Sections = append(doc.Sections, section)
		sectionIdx++
	}

	if opts.ExtractMode == options.Full && opts.ExtractResources {
		if err := extractBinData(r, doc); err != nil {
			return nil, err
		}
	}

	if preview, err := r.OpenStream("PrvText"); err == nil {
		doc.Metadata.PreviewText = decodeUTF16LE(preview)
	}

	return doc, nil
}

func maybeInflate(data []byte, compressed bool) ([]byte, error) {
	if !compressed {
		return data, nil
	}
	return deflate.RawInflate(data)
}

func decodeUTF16LE(data []byte) string {
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = uint16(data[2*i]) | uint16(data[2*i+1])<<8
	}
	return string(utf16.Decode(units))
}

// wireBinDataFilenames pairs binDataCount (the number of BinData records
// encountered in DocInfo, in encounter order) against the BinData/
// storage's actual entry listing, sorted the way HWP names them
// (BIN0001.*, BIN0002.*, ...), and registers each 1-based picture index
// against its resolved filename.
func wireBinDataFilenames(r *ole2.Reader, doc *model.Document, binDataCount int) error {
	if binDataCount == 0 || !r.Exists("BinData") {
		return nil
	}
	names, err := r.ListStorage("BinData")
	if err != nil {
		return nil
	}
	sort.Strings(names)
	for i, name := range names {
		if i >= binDataCount {
			break
		}
		doc.Styles.RegisterBinDataFilename(uint32(i+1), name)
	}
	return nil
}

// extractBinData reads every entry under the BinData storage into
// doc.Resources, guessing each resource's kind/MIME type from its file
// extension.
func extractBinData(r *ole2.Reader, doc *model.Document) error {
	if !r.Exists("BinData") {
		return nil
	}
	names, err := r.ListStorage("BinData")
	if err != nil {
		return nil
	}
	for _, name := range names {
		data, err := r.OpenStream("BinData/" + name)
		if err != nil {
			continue
		}
		mime, kind := guessResourceType(name)
		doc.Resources[name] = model.Resource{
			Kind:     kind,
			Filename: name,
			MimeType: mime,
			Data:     data,
		}
	}
	return nil
}

func guessResourceType(filename string) (mime string, kind model.ResourceKind) {
	ext := strings.ToLower(filename)
	if i := strings.LastIndex(ext, "."); i >= 0 {
		ext = ext[i+1:]
	}
	switch ext {
	case "bmp":
		return "image/bmp", model.ResourceImage
	case "jpg", "jpeg":
		return "image/jpeg", model.ResourceImage
	case "png":
		return "image/png", model.ResourceImage
	case "gif":
		return "image/gif", model.ResourceImage
	case "ole":
		return "application/x-ole-storage", model.ResourceOLEObject
	default:
		return "application/octet-stream", model.ResourceOther
	}
}
