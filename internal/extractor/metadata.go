package extractor

import (
	exif "github.com/dsoprea/go-exif/v3"
)

// editorSoftware returns the editing-software name recorded in the image's
// EXIF metadata, or "" when the image carries none.
//
// A Software or ProcessingSoftware tag on a scanned contract page means the
// raster went through an editor after capture, which is worth surfacing for
// tampering review. Images without EXIF blocks (most PNG renders) simply
// yield nothing.
func editorSoftware(imageData []byte) string {
	rawExif, err := exif.SearchAndExtractExif(imageData)
	if err != nil || rawExif == nil {
		return ""
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return ""
	}

	for _, entry := range entries {
		switch entry.TagName {
		case "Software", "ProcessingSoftware":
			if entry.Formatted != "" {
				return entry.Formatted
			}
		}
	}

	return ""
}
