// container.go orchestrates a full HWPX (XmlZip) parse: header.xml's
// distribution flag and styles, content.hpf's manifest-ordered section
// list and Dublin Core metadata, each section<N>.xml, and the BinData/
// member files.
package hwpx

import (
	"regexp"
	"strings"

	"github.com/iyulab/go-unhwp/hwperr"
	"github.com/iyulab/go-unhwp/hwpxzip"
	"github.com/iyulab/go-unhwp/model"
	"github.com/iyulab/go-unhwp/options"
)

// Parse reads a full HWPX document from an opened ZIP archive and returns
// the unified document model.
func Parse(archive *hwpxzip.Archive, opts options.ParseOptions) (*model.Document, error) {
	log := opts.Log()
	doc := model.NewDocument()

	if headerXML, err := archive.ReadFile("Contents/header.xml"); err == nil {
		distribute, _ := parseHeaderOptions(headerXML)
		doc.Metadata.Restricted = distribute
		if err := ParseStyles([]byte(headerXML), doc.Styles); err != nil {
			return nil, err
		}
	}

	if manifest, err := archive.ReadFile("Contents/content.hpf"); err == nil {
		title, author := parseContentMetadata(manifest)
		doc.Metadata.Title = title
		doc.Metadata.Author = author
	}
	if doc.Metadata.Restricted {
		return nil, hwperr.New(hwperr.KindDistributionRestricted, "")
	}

	sectionNames := resolveSectionOrder(archive)
	for i, name := range sectionNames {
		xmlData, err := archive.ReadBinary(name)
		if err != nil {
			if opts.ErrorMode == options.Lenient {
				log.WithField("section", name).WithError(err).Warn("skipping unreadable section")
				continue
			}
			return nil, hwperr.Wrap(hwperr.KindMissingComponent, name, err)
		}
		section, err := ParseSection(xmlData, i, doc.Styles)
		if err != nil {
			if opts.ErrorMode == options.Lenient {
				log.WithField("section", name).WithError(err).Warn("skipping malformed section")
				continue
			}
			return nil, err
		}
		doc.Sections = append(doc.Sections, section)
	}

	if opts.ExtractMode == options.Full && opts.ExtractResources {
		extractBinData(archive, doc)
	}

	return doc, nil
}

// parseHeaderOptions extracts header.xml's docOption distribute flag
// (SPEC_FULL.md's SUPPLEMENTED FEATURES: distribution-document detection).
func parseHeaderOptions(headerXML string) (distribute bool, err error) {
	idx := strings.Index(headerXML, "docOption")
	if idx < 0 {
		return false, nil
	}
	tagEnd := strings.Index(headerXML[idx:], ">")
	if tagEnd < 0 {
		return false, nil
	}
	tag := headerXML[idx : idx+tagEnd]
	return strings.Contains(tag, `distribute="true"`) || strings.Contains(tag, `distribute="1"`), nil
}

var titleRe = regexp.MustCompile(`(?s)<dc:title[^>]*>(.*?)</dc:title>`)
var creatorRe = regexp.MustCompile(`(?s)<dc:creator[^>]*>(.*?)</dc:creator>`)

// parseContentMetadata does a simple substring-bounded extraction of
// content.hpf's Dublin Core title/creator, matching the original's own
// simplification rather than a full package-manifest parser.
func parseContentMetadata(manifest string) (title, author string) {
	if m := titleRe.FindStringSubmatch(manifest); len(m) == 2 {
		title = strings.TrimSpace(m[1])
	}
	if m := creatorRe.FindStringSubmatch(manifest); len(m) == 2 {
		author = strings.TrimSpace(m[1])
	}
	return
}

var itemrefRe = regexp.MustCompile(`<itemref[^>]*idref="([^"]+)"`)
var manifestItemRe = regexp.MustCompile(`<item[^>]*id="([^"]+)"[^>]*href="([^"]+)"`)

// resolveSectionOrder reads content.hpf's <spine>/<itemref> ordering when
// present, falling back to a lexicographic scan of Contents/section*.xml.
func resolveSectionOrder(archive *hwpxzip.Archive) []string {
	manifest, err := archive.ReadFile("Contents/content.hpf")
	if err == nil {
		idToHref := map[string]string{}
		for _, m := range manifestItemRe.FindAllStringSubmatch(manifest, -1) {
			idToHref[m[1]] = m[2]
		}
		var names []string
		for _, m := range itemrefRe.FindAllStringSubmatch(manifest, -1) {
			if href, ok := idToHref[m[1]]; ok && strings.Contains(href, "section") {
				names = append(names, "Contents/"+href)
			}
		}
		if len(names) > 0 {
			return names
		}
	}
	return archive.ListPrefix("Contents/section")
}

func extractBinData(archive *hwpxzip.Archive, doc *model.Document) {
	for _, name := range archive.ListPrefix("BinData/") {
		data, err := archive.ReadBinary(name)
		if err != nil {
			continue
		}
		base := name[strings.LastIndex(name, "/")+1:]
		mime, kind := guessMimeType(base)
		doc.Resources[base] = model.Resource{
			Kind:     kind,
			Filename: base,
			MimeType: mime,
			Data:     data,
		}
	}
}

func guessMimeType(filename string) (mime string, kind model.ResourceKind) {
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
	case "webp":
		return "image/webp", model.ResourceImage
	case "svg":
		return "image/svg+xml", model.ResourceImage
	case "emf":
		return "image/x-emf", model.ResourceImage
	case "wmf":
		return "image/x-wmf", model.ResourceImage
	case "ole":
		return "application/x-ole-storage", model.ResourceOLEObject
	default:
		return "application/octet-stream", model.ResourceOther
	}
}
