package playlist_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"apollo/internal/playlist"
	"apollo/internal/testsupport"
)

func TestParseReferences(t *testing.T) {
	dir := filepath.FromSlash("/lists")
	content := "#EXTM3U\n\n  songs/a.mp3  \r\n# comment\n/abs/b.flac\n../up/c.mp3"

	refs := playlist.ParseReferences(content, dir)
	if len(refs) != 3 {
		t.Fatalf("expected 3 references, got %#v", refs)
	}
	want := []struct {
		line     int
		raw      string
		resolved string
	}{
		{2, "songs/a.mp3", filepath.FromSlash("/lists/songs/a.mp3")},
		{4, "/abs/b.flac", filepath.FromSlash("/abs/b.flac")},
		{5, "../up/c.mp3", filepath.FromSlash("/up/c.mp3")},
	}
	for i, w := range want {
		if refs[i].Line != w.line || refs[i].Raw != w.raw || refs[i].Resolved != w.resolved {
			t.Fatalf("ref %d = %#v, want %+v", i, refs[i], w)
		}
	}
}

func TestPlaylistNameAndExtensions(t *testing.T) {
	if playlist.Name("/x/Road Trip.m3u8") != "Road Trip" {
		t.Fatalf("unexpected name %q", playlist.Name("/x/Road Trip.m3u8"))
	}
	for path, want := range map[string]bool{"a.m3u": true, "a.M3U8": true, "a.pls": false, "a.mp3": false} {
		if got := playlist.IsPlaylistFile(path); got != want {
			t.Fatalf("IsPlaylistFile(%s) = %v, want %v", path, got, want)
		}
	}
}

func TestRewriteLine(t *testing.T) {
	cases := []struct {
		name        string
		content     string
		target      string
		replacement string
		want        string
		replaced    bool
	}{
		{
			name:        "relative line absolute target",
			content:     "#EXTM3U\nold/a.mp3\nkeep.mp3\n",
			target:      "{dir}/old/a.mp3",
			replacement: "{dir}/new/a.flac",
			want:        "#EXTM3U\nnew/a.flac\nkeep.mp3\n",
			replaced:    true,
		},
		{
			name:        "absolute line inside dir",
			content:     "{dir}/old/a.mp3\n",
			target:      "old/a.mp3",
			replacement: "{dir}/new/a.flac",
			want:        "new/a.flac\n",
			replaced:    true,
		},
		{
			name:        "dot slash cleaned",
			content:     "./old/a.mp3\n",
			target:      "{dir}/old/a.mp3",
			replacement: "{dir}/b.mp3",
			want:        "b.mp3\n",
			replaced:    true,
		},
		{
			name:        "replacement outside dir stays absolute",
			content:     "a.mp3\n",
			target:      "a.mp3",
			replacement: "/elsewhere/b.mp3",
			want:        "/elsewhere/b.mp3\n",
			replaced:    true,
		},
		{
			name:        "crlf preserved",
			content:     "#EXTM3U\r\na.mp3\r\nb.mp3\r\n",
			target:      "a.mp3",
			replacement: "{dir}/c.mp3",
			want:        "#EXTM3U\r\nc.mp3\r\nb.mp3\r\n",
			replaced:    true,
		},
		{
			name:        "missing trailing newline preserved",
			content:     "x.mp3\na.mp3",
			target:      "a.mp3",
			replacement: "{dir}/c.mp3",
			want:        "x.mp3\nc.mp3",
			replaced:    true,
		},
		{
			name:        "first match only",
			content:     "a.mp3\na.mp3\n",
			target:      "a.mp3",
			replacement: "{dir}/c.mp3",
			want:        "c.mp3\na.mp3\n",
			replaced:    true,
		},
		{
			name:        "no match",
			content:     "a.mp3\n",
			target:      "z.mp3",
			replacement: "{dir}/c.mp3",
			want:        "a.mp3\n",
			replaced:    false,
		},
		{
			name:        "comment not matched",
			content:     "#a.mp3\n",
			target:      "#a.mp3",
			replacement: "{dir}/c.mp3",
			want:        "#a.mp3\n",
			replaced:    false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			expand := func(s string) string {
				return strings.ReplaceAll(s, "{dir}", filepath.ToSlash(dir))
			}
			path := filepath.Join(dir, "mix.m3u")
			testsupport.WriteText(t, path, expand(tc.content))

			replaced, err := playlist.RewriteLine(path, filepath.FromSlash(expand(tc.target)), filepath.FromSlash(expand(tc.replacement)))
			if err != nil {
				t.Fatalf("RewriteLine failed: %v", err)
			}
			if replaced != tc.replaced {
				t.Fatalf("replaced = %v, want %v", replaced, tc.replaced)
			}
			if got := testsupport.ReadText(t, path); got != expand(tc.want) {
				t.Fatalf("content = %q, want %q", got, expand(tc.want))
			}
		})
	}
}

func TestRemoveLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mix.m3u")
	testsupport.WriteText(t, path, "#EXTM3U\r\na.mp3\r\nb.mp3\r\na.mp3\r\n")

	removed, err := playlist.RemoveLine(path, filepath.Join(dir, "a.mp3"))
	if err != nil {
		t.Fatalf("RemoveLine failed: %v", err)
	}
	if !removed {
		t.Fatal("expected a line removed")
	}
	if got := testsupport.ReadText(t, path); got != "#EXTM3U\r\nb.mp3\r\na.mp3\r\n" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestRewriteLineMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := playlist.RewriteLine(filepath.Join(dir, "gone.m3u"), "a", "b"); err == nil {
		t.Fatal("expected error for missing playlist")
	}
	if _, err := os.Stat(filepath.Join(dir, "gone.m3u")); err == nil {
		t.Fatal("rewrite created a playlist")
	}
}
