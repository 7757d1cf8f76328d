// Package ole2 reads Compound File Binary (CFB/OLE2) containers, the
// storage shell HWP 5.x documents are packaged in. It is a generalization
// of the teacher msdoc package's flat stream reader into a proper
// storage/stream tree walker, since HWP nests resources under storages
// such as BodyText/Section0 and BinData/<name> that a flat name match
// cannot tell apart from a top-level stream of the same leaf name.
package ole2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"

	"github.com/iyulab/go-unhwp/hwperr"
)

const (
	headerSignature = 0xE11AB1A1E011CFD0
	sectorSize      = 512
	dirEntrySize    = 128

	objectTypeEmpty   = 0
	objectTypeStorage = 1
	objectTypeStream  = 2
	objectTypeRoot    = 5

	freeSector     = 0xFFFFFFFF
	endOfChain     = 0xFFFFFFFE
	noStream       = -1
)

// Reader provides named-path access to streams within an OLE2 compound
// file, the container shell used by HWP 5.x (BinaryCompound) documents.
type Reader struct {
	r          io.ReaderAt
	fat        []uint32
	dirEntries []dirEntry
}

type dirEntry struct {
	Name           [32]uint16
	NameLen        uint16
	ObjectType     byte
	LeftSibling    int32
	RightSibling   int32
	ChildID        int32
	StartingSector int32
	StreamSize     uint64
}

// NewReader initializes an OLE2 reader from an io.ReaderAt positioned at
// the start of the container.
func NewReader(r io.ReaderAt) (*Reader, error) {
	headerBytes := make([]byte, 76)
	if _, err := r.ReadAt(headerBytes, 0); err != nil {
		return nil, hwperr.Wrap(hwperr.KindInvalidData, "reading CFB header", err)
	}

	signature := binary.LittleEndian.Uint64(headerBytes[0:8])
	if signature != headerSignature {
		return nil, hwperr.New(hwperr.KindUnknownFormat, "bad CFB signature")
	}

	dirStartSector := int32(binary.LittleEndian.Uint32(headerBytes[48:52]))
	fatSectorCount := binary.LittleEndian.Uint32(headerBytes[44:48])
	difatFirstSector := int32(binary.LittleEndian.Uint32(headerBytes[68:72]))
	difatSectorCount := binary.LittleEndian.Uint32(headerBytes[72:76])

	difatBytes := make([]byte, 436)
	if _, err := r.ReadAt(difatBytes, 76); err != nil {
		return nil, hwperr.Wrap(hwperr.KindInvalidData, "reading header DIFAT", err)
	}

	var fatSectorNumbers []int32
	for i := 0; i < 109 && i*4 < len(difatBytes) && len(fatSectorNumbers) < int(fatSectorCount); i++ {
		secNum := int32(binary.LittleEndian.Uint32(difatBytes[i*4 : (i+1)*4]))
		if secNum >= 0 {
			fatSectorNumbers = append(fatSectorNumbers, secNum)
		}
	}

	if difatSectorCount > 0 && difatSectorCount < 1000 && difatFirstSector >= 0 {
		cur := difatFirstSector
		for i := uint32(0); i < difatSectorCount && cur >= 0 && len(fatSectorNumbers) < int(fatSectorCount); i++ {
			sector := make([]byte, sectorSize)
			if _, err := r.ReadAt(sector, int64(cur+1)*sectorSize); err != nil {
				break
			}
			for j := 0; j < 127 && len(fatSectorNumbers) < int(fatSectorCount); j++ {
				secNum := int32(binary.LittleEndian.Uint32(sector[j*4 : (j+1)*4]))
				if secNum >= 0 {
					fatSectorNumbers = append(fatSectorNumbers, secNum)
				}
			}
			cur = int32(binary.LittleEndian.Uint32(sector[508:512]))
		}
	}

	var fatSectors []byte
	for _, secNum := range fatSectorNumbers {
		sector := make([]byte, sectorSize)
		if _, err := r.ReadAt(sector, int64(secNum+1)*sectorSize); err != nil {
			continue
		}
		fatSectors = append(fatSectors, sector...)
	}

	fat := make([]uint32, len(fatSectors)/4)
	if err := binary.Read(bytes.NewReader(fatSectors), binary.LittleEndian, &fat); err != nil {
		return nil, hwperr.Wrap(hwperr.KindInvalidData, "decoding FAT", err)
	}

	dirStream, err := readChain(r, fat, dirStartSector)
	if err != nil {
		return nil, hwperr.Wrap(hwperr.KindMissingComponent, "directory stream", err)
	}

	numDirs := len(dirStream) / dirEntrySize
	dirEntries := make([]dirEntry, numDirs)
	for i := 0; i < numDirs; i++ {
		entryData := dirStream[i*dirEntrySize : (i+1)*dirEntrySize]
		for j := 0; j < 32; j++ {
			dirEntries[i].Name[j] = binary.LittleEndian.Uint16(entryData[j*2 : (j+1)*2])
		}
		dirEntries[i].NameLen = binary.LittleEndian.Uint16(entryData[64:66])
		dirEntries[i].ObjectType = entryData[66]
		dirEntries[i].LeftSibling = int32(binary.LittleEndian.Uint32(entryData[68:72]))
		dirEntries[i].RightSibling = int32(binary.LittleEndian.Uint32(entryData[72:76]))
		dirEntries[i].ChildID = int32(binary.LittleEndian.Uint32(entryData[76:80]))
		dirEntries[i].StartingSector = int32(binary.LittleEndian.Uint32(entryData[116:120]))
		dirEntries[i].StreamSize = binary.LittleEndian.Uint64(entryData[120:128])
	}

	return &Reader{r, fat, dirEntries}, nil
}

// readChain follows a FAT sector chain starting at startSector, concatenating
// every sector's raw bytes. Chains terminate at endOfChain.
func readChain(r io.ReaderAt, fat []uint32, startSector int32) ([]byte, error) {
	if startSector < 0 {
		return nil, nil
	}
	var out []byte
	sectorNum := startSector
	seen := make(map[int32]bool)
	for sectorNum >= 0 && !seen[sectorNum] {
		seen[sectorNum] = true
		sector := make([]byte, sectorSize)
		if _, err := r.ReadAt(sector, int64(sectorNum+1)*sectorSize); err != nil {
			return out, err
		}
		out = append(out, sector...)
		if int(sectorNum) >= len(fat) {
			break
		}
		next := fat[sectorNum]
		if next == endOfChain || next == freeSector {
			break
		}
		sectorNum = int32(next)
	}
	return out, nil
}

func (r *Reader) rootIndex() int {
	for i, e := range r.dirEntries {
		if e.ObjectType == objectTypeRoot {
			return i
		}
	}
	return 0
}

// findChild walks the red-black sibling tree rooted at entry.ChildID
// looking for a case-sensitive name match among the parent's children.
func (r *Reader) findChild(parentIdx int, name string) (int, bool) {
	if parentIdx < 0 || parentIdx >= len(r.dirEntries) {
		return -1, false
	}
	start := r.dirEntries[parentIdx].ChildID
	if start < 0 {
		return -1, false
	}
	var walk func(idx int32) (int, bool)
	walk = func(idx int32) (int, bool) {
		if idx < 0 || int(idx) >= len(r.dirEntries) {
			return -1, false
		}
		e := r.dirEntries[idx]
		entryName := utf16BytesToString(e.Name, e.NameLen)
		if found, ok := walk(e.LeftSibling); ok {
			return found, ok
		}
		if strings.TrimSpace(entryName) == strings.TrimSpace(name) {
			return int(idx), true
		}
		return walk(e.RightSibling)
	}
	return walk(start)
}

// resolve finds the directory entry addressed by a "/"-separated path
// such as "BodyText/Section0" or "BinData/BIN0001.jpg", relative to the
// root storage.
func (r *Reader) resolve(path string) (int, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	cur := r.rootIndex()
	for _, seg := range segments {
		next, ok := r.findChild(cur, seg)
		if !ok {
			return -1, hwperr.New(hwperr.KindMissingComponent, path)
		}
		cur = next
	}
	return cur, nil
}

// Exists reports whether a stream or storage exists at path.
func (r *Reader) Exists(path string) bool {
	_, err := r.resolve(path)
	return err == nil
}

// ListStorage returns the names of the immediate children of the storage
// at path ("" for the root storage).
func (r *Reader) ListStorage(path string) ([]string, error) {
	parentIdx := r.rootIndex()
	if strings.TrimSpace(path) != "" {
		idx, err := r.resolve(path)
		if err != nil {
			return nil, err
		}
		parentIdx = idx
	}
	start := r.dirEntries[parentIdx].ChildID
	var names []string
	var walk func(idx int32)
	walk = func(idx int32) {
		if idx < 0 || int(idx) >= len(r.dirEntries) {
			return
		}
		e := r.dirEntries[idx]
		walk(e.LeftSibling)
		names = append(names, strings.TrimSpace(utf16BytesToString(e.Name, e.NameLen)))
		walk(e.RightSibling)
	}
	walk(start)
	return names, nil
}

// OpenStream reads the entire contents of the stream at path.
func (r *Reader) OpenStream(path string) ([]byte, error) {
	idx, err := r.resolve(path)
	if err != nil {
		return nil, err
	}
	entry := r.dirEntries[idx]
	if entry.ObjectType != objectTypeStream {
		return nil, hwperr.New(hwperr.KindInvalidData, fmt.Sprintf("%s is not a stream", path))
	}
	data, err := readChain(r.r, r.fat, entry.StartingSector)
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) > entry.StreamSize {
		data = data[:entry.StreamSize]
	}
	return data, nil
}

// ReadStream is a backward-compatible flat-name lookup retained for the
// top-level streams (FileHeader, DocInfo, PrvText) that live directly
// under the root storage.
func (r *Reader) ReadStream(name string) ([]byte, error) {
	return r.OpenStream(name)
}

func utf16BytesToString(name [32]uint16, nameLen uint16) string {
	if nameLen < 2 {
		return ""
	}
	maxChars := int(nameLen / 2)
	end := 0
	for end < maxChars && end < len(name) {
		if name[end] == 0 {
			break
		}
		end++
	}
	return string(utf16.Decode(name[:end]))
}
