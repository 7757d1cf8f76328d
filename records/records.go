// Package records decodes the tag/level/size record stream shared by
// every decompressed HWP 5.x stream (DocInfo and each BodyText/SectionN).
// It mirrors the teacher's FKP/PLC byte-cracking style: manual
// little-endian slicing with explicit bounds checks, no struct tags.
package records

import (
	"encoding/binary"

	"github.com/iyulab/go-unhwp/hwperr"
)

// TagId enumerates the record types that appear in DocInfo and BodyText
// streams. Values match the HWP 5.x binary specification exactly.
type TagId uint16

const (
	TagDocumentProperties    TagId = 16
	TagIdMappings            TagId = 17
	TagBinData               TagId = 18
	TagFaceName              TagId = 19
	TagBorderFill            TagId = 20
	TagCharShape             TagId = 21
	TagTabDef                TagId = 22
	TagNumbering             TagId = 23
	TagBullet                TagId = 24
	TagParaShape             TagId = 25
	TagStyle                 TagId = 26
	TagDocData               TagId = 27
	TagDistributeDocData     TagId = 28
	TagCompatibleDocument    TagId = 30
	TagLayoutCompatibility   TagId = 31
	TagParaHeader            TagId = 66
	TagParaText              TagId = 67
	TagParaCharShape         TagId = 68
	TagParaLineSeg           TagId = 69
	TagParaRangeTag          TagId = 70
	TagCtrlHeader            TagId = 71
	TagListHeader            TagId = 72
	TagPageDef               TagId = 73
	TagFootnoteShape         TagId = 74
	TagPageBorderFill        TagId = 75
	TagShapeComponent        TagId = 76
	TagTable                 TagId = 77
	TagShapeComponentLine    TagId = 78
	TagShapeComponentContainer TagId = 86
	TagCtrlData              TagId = 87
	TagEqEdit                TagId = 88
	TagUnknown               TagId = 0xFFFF
)

const sizeSentinel = 0xFFF

// Record is a single decoded tag/level/payload triple.
type Record struct {
	Tag     TagId
	Level   int
	Payload []byte
	Offset  int64 // byte offset of the record header within its stream
}

func (r Record) ReadU8(pos int) (byte, bool) {
	if pos < 0 || pos >= len(r.Payload) {
		return 0, false
	}
	return r.Payload[pos], true
}

func (r Record) ReadU16(pos int) (uint16, bool) {
	if pos < 0 || pos+2 > len(r.Payload) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(r.Payload[pos : pos+2]), true
}

func (r Record) ReadU32(pos int) (uint32, bool) {
	if pos < 0 || pos+4 > len(r.Payload) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(r.Payload[pos : pos+4]), true
}

func (r Record) ReadI32(pos int) (int32, bool) {
	v, ok := r.ReadU32(pos)
	return int32(v), ok
}

// Iterator lazily walks a decompressed record stream, decoding one header
// at a time and validating that the claimed payload size fits.
type Iterator struct {
	data []byte
	pos  int64
}

func NewIterator(data []byte) *Iterator {
	return &Iterator{data: data}
}

// Next returns the next record, or (Record{}, false, nil) at end of
// stream. A malformed header (size exceeds the remaining buffer) yields a
// RecordParse error.
func (it *Iterator) Next() (Record, bool, error) {
	if it.pos >= int64(len(it.data)) {
		return Record{}, false, nil
	}
	if it.pos+4 > int64(len(it.data)) {
		return Record{}, false, hwperr.RecordParse(it.pos, "truncated record header")
	}

	start := it.pos
	header := binary.LittleEndian.Uint32(it.data[it.pos : it.pos+4])
	it.pos += 4

	tag := TagId(header & 0x3FF)
	level := int((header >> 10) & 0x3FF)
	size := int((header >> 20) & 0xFFF)

	if size == sizeSentinel {
		if it.pos+4 > int64(len(it.data)) {
			return Record{}, false, hwperr.RecordParse(start, "truncated extended size field")
		}
		size = int(binary.LittleEndian.Uint32(it.data[it.pos : it.pos+4]))
		it.pos += 4
	}

	if it.pos+int64(size) > int64(len(it.data)) {
		return Record{}, false, hwperr.RecordParse(start, "record payload exceeds buffer")
	}

	payload := it.data[it.pos : it.pos+int64(size)]
	it.pos += int64(size)

	return Record{Tag: tag, Level: level, Payload: payload, Offset: start}, true, nil
}

// All drains the iterator into a slice, stopping at the first error.
func All(data []byte) ([]Record, error) {
	it := NewIterator(data)
	var out []Record
	for {
		rec, ok, err := it.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, rec)
	}
}
