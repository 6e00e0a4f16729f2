package library

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MimeLyc/srt-batch-translator/pkg/file"
)

// Scanner walks media directories looking for SRT files that still need a
// target-language translation.
type Scanner struct {
	dirs       []string
	targetLang string
}

func NewScanner(dirs []string, targetLang string) *Scanner {
	return &Scanner{
		dirs:       dirs,
		targetLang: strings.ToLower(targetLang),
	}
}

// FindPending returns subtitle files with no target-language sibling.
// Files that are themselves translation outputs (name ends in ".<lang>.srt")
// are skipped.
func (s *Scanner) FindPending(ctx context.Context) ([]string, error) {
	var pending []string

	for _, dir := range s.dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() {
				return nil
			}
			if !strings.HasSuffix(strings.ToLower(d.Name()), ".srt") {
				return nil
			}
			if s.isTranslationOutput(d.Name()) {
				return nil
			}
			if s.hasTargetSibling(path) {
				return nil
			}
			pending = append(pending, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return pending, nil
}

func (s *Scanner) isTranslationOutput(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), "."+s.targetLang+".srt")
}

func (s *Scanner) hasTargetSibling(path string) bool {
	sibling := file.InsertLangCode(path, s.targetLang)
	_, err := os.Stat(sibling)
	return err == nil
}
