package file

import (
	"fmt"
	"path/filepath"
	"strings"
)

// InsertLangCode builds an output path by inserting a lowercase language code
// before the file extension: "movie.srt" + "fr" -> "movie.fr.srt".
func InsertLangCode(path, lang string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s.%s%s", base, strings.ToLower(lang), ext)
}

// ReplaceExt replaces the extension of path with ext. A missing leading dot
// on ext is tolerated.
func ReplaceExt(path, ext string) string {
	if path == "" {
		return path
	}

	dir := filepath.Dir(path)
	filename := filepath.Base(path)

	lastDot := strings.LastIndex(filename, ".")

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	if lastDot <= 0 {
		return filepath.Join(dir, filename+ext)
	}

	return filepath.Join(dir, filename[:lastDot]+ext)
}
