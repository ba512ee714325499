package comparison

import (
	"path"
	"regexp"
	"strings"

	"github.com/carbocation/ibdlinkage"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]`)

// IndividualName derives an individual's identifier from the file holding its
// comparison: the file name without directory, compression suffix or
// extension, with non-word characters removed. gs:// paths are handled like
// local slash-separated paths.
func IndividualName(filename string) string {
	base := ibdlinkage.TrimCompressionExt(path.Base(strings.ReplaceAll(filename, `\`, "/")))
	stem := strings.TrimSuffix(base, path.Ext(base))

	return nonWord.ReplaceAllString(stem, "")
}
