package documents

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IconBaseURL hosts the Office brand icon set.
const IconBaseURL = "https://static2.sharepointonline.com/files/fabric/assets/brand-icons/document/svg"

// IconExtensions lists the document types that have a brand icon.
var IconExtensions = []string{
	"accdb", "csv", "docx", "dotx", "mpp", "mpt", "odp", "ods", "odt", "one",
	"onepkg", "onetoc", "potx", "ppsx", "pptx", "pub", "vsdx", "vssx", "vstx",
	"xls", "xlsx", "xltx", "xsn",
}

// IconURL returns the 16px SVG icon URL for a file extension.
func IconURL(ext string) string {
	return fmt.Sprintf("%s/%s_16x1.svg", IconBaseURL, normalizeExt(ext))
}

// HasIcon reports whether ext is one of IconExtensions.
func HasIcon(ext string) bool {
	ext = normalizeExt(ext)
	for _, known := range IconExtensions {
		if known == ext {
			return true
		}
	}
	return false
}

// IconForName picks the icon for a file name by extension, or "" when none exists.
func IconForName(name string) string {
	ext := filepath.Ext(name)
	if !HasIcon(ext) {
		return ""
	}
	return IconURL(ext)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
