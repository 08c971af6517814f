package archive

import (
	"github.com/gabriel-vasile/mimetype"

	"github.com/GriffinCanCode/liview/internal/shared/fserr"
)

const zipMIME = "application/zip"

// Detect sniffs path and reports its MIME type. Members of the zip family
// (jar, epub, cbz written as zip, office documents) are accepted by IsZip.
func Detect(path string) (*mimetype.MIME, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fserr.IO("detect archive format", path, err)
	}
	return mtype, nil
}

// IsZip reports whether mtype is zip or derives from it.
func IsZip(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(zipMIME) {
			return true
		}
	}
	return false
}
