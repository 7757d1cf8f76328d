package hwp3

import (
	"golang.org/x/text/encoding/korean"

	"github.com/iyulab/go-unhwp/deflate"
	"github.com/iyulab/go-unhwp/hwperr"
	"github.com/iyulab/go-unhwp/model"
	"github.com/iyulab/go-unhwp/options"
	"github.com/iyulab/go-unhwp/style"
)

const (
	byteParaEnd    = 0x0D
	byteLineBreak  = 0x0A
	byteTab        = 0x09
	byteHardSpace  = 0xA0
	byteCtrlStart  = 0x1B

	toggleBold      = 0x01
	toggleItalic    = 0x02
	toggleUnderline = 0x03
)

// Parse decodes a full legacy HWP 3.x file into the unified document
// model. Legacy documents have a single implicit section.
func Parse(data []byte, opts options.ParseOptions) (*model.Document, error) {
	log := opts.Log()
	if len(data) < headerSize {
		return nil, hwperr.New(hwperr.KindInvalidData, "file too short for legacy header")
	}

	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if header.Encrypted {
		return nil, hwperr.New(hwperr.KindDistributionRestricted, "legacy encrypted flag set")
	}

	bodyOffset := header.BodyOffset
	if bodyOffset == 0 {
		bodyOffset = headerSize
	}
	if int(bodyOffset) > len(data) {
		return nil, hwperr.New(hwperr.KindInvalidData, "body offset beyond file")
	}

	bodyEnd := len(data)
	if header.BodySize != 0 && int(bodyOffset)+int(header.BodySize) <= len(data) {
		bodyEnd = int(bodyOffset) + int(header.BodySize)
	}
	raw := data[bodyOffset:bodyEnd]

	var body []byte
	if header.Compressed {
		body, err = deflate.ZlibInflate(raw)
		if err != nil {
			return nil, err
		}
	} else {
		body = raw
	}

	doc := model.NewDocument()
	doc.Metadata.FormatVersion = header.VersionString
	log.WithField("version", header.VersionString).Debug("parsing legacy HWP 3.x body")
	section, err := decodeBody(body)
	if err != nil {
		if opts.ErrorMode == options.Lenient {
			log.WithError(err).Warn("legacy body decode recovered with partial content")
		} else {
			return nil, err
		}
	}
	doc.Sections = append(doc.Sections, section)
	return doc, nil
}

// decodeBody runs the control-byte state machine over a decompressed
// legacy body stream, producing paragraphs of CP949/EUC-KR text.
func decodeBody(body []byte) (model.Section, error) {
	section := model.Section{Index: 0}
	decoder := korean.CP949.NewDecoder()

	var content []model.InlineContent
	var runBuf []byte
	var curStyle style.TextStyle

	flush := func() {
		if len(runBuf) == 0 {
			return
		}
		decoded, err := decoder.Bytes(runBuf)
		if err != nil || len(decoded) == 0 {
			decoded = runBuf
		}
		content = append(content, model.InlineContent{
			Kind: model.InlineText, Text: string(decoded), Style: curStyle,
		})
		runBuf = nil
	}

	finishParagraph := func() {
		flush()
		if len(content) > 0 {
			section.Content = append(section.Content, model.Block{
				Kind:      model.BlockParagraph,
				Paragraph: model.Paragraph{Content: content},
			})
			content = nil
		}
	}

	i := 0
	for i < len(body) {
		b := body[i]
		switch {
		case b == byteParaEnd:
			finishParagraph()
			i++

		case b == byteLineBreak:
			flush()
			content = append(content, model.InlineContent{Kind: model.InlineLineBreak})
			i++

		case b == byteTab:
			runBuf = append(runBuf, '\t')
			i++

		case b == byteHardSpace:
			runBuf = append(runBuf, ' ')
			i++

		case b == byteCtrlStart:
			if i+1 < len(body) {
				flush()
				switch body[i+1] {
				case toggleBold:
					curStyle.Bold = !curStyle.Bold
				case toggleItalic:
					curStyle.Italic = !curStyle.Italic
				case toggleUnderline:
					curStyle.Underline = !curStyle.Underline
				}
				i += 2
			} else {
				i++
			}

		case b >= 0x81 && b <= 0xFE && i+1 < len(body) && isTrailByte(body[i+1]):
			runBuf = append(runBuf, b, body[i+1])
			i += 2

		case b >= 0x20 && b <= 0x7E:
			runBuf = append(runBuf, b)
			i++

		default:
			i++
		}
	}
	finishParagraph()

	return section, nil
}

func isTrailByte(b byte) bool {
	return (b >= 0x41 && b <= 0x5A) || (b >= 0x61 && b <= 0x7A) || (b >= 0x81 && b <= 0xFE)
}
