package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertLangCode(t *testing.T) {
	tests := []struct {
		name string
		path string
		lang string
		want string
	}{
		{name: "simple", path: "movie.srt", lang: "fr", want: "movie.fr.srt"},
		{name: "lowercases code", path: "movie.srt", lang: "FR", want: "movie.fr.srt"},
		{name: "nested dir", path: "/media/show/e01.srt", lang: "zh", want: "/media/show/e01.zh.srt"},
		{name: "multiple dots", path: "show.s01e01.srt", lang: "ja", want: "show.s01e01.ja.srt"},
		{name: "no extension", path: "subtitles", lang: "de", want: "subtitles.de"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InsertLangCode(tt.path, tt.lang))
		})
	}
}

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, "a/b.txt", ReplaceExt("a/b.srt", "txt"))
	assert.Equal(t, "a/b.txt", ReplaceExt("a/b.srt", ".txt"))
	assert.Equal(t, "a/b.txt", ReplaceExt("a/b", "txt"))
	assert.Equal(t, "", ReplaceExt("", "txt"))
}
