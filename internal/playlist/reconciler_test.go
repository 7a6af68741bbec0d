package playlist_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"apollo/internal/catalog"
	"apollo/internal/logging"
	"apollo/internal/playlist"
	"apollo/internal/prompt"
	"apollo/internal/testsupport"
)

// fixedScorer gives title its score and every other title zero.
func fixedScorer(scores map[string]float64) playlist.Scorer {
	return func(_, title string) float64 { return scores[title] }
}

func TestIndexRankIsStableAndBounded(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	for _, tr := range []catalog.Track{
		{Path: "/m/1.mp3", Title: "Low"},
		{Path: "/m/2.mp3", Title: "TieA"},
		{Path: "/m/3.mp3", Title: "High"},
		{Path: "/m/4.mp3", Title: "TieB"},
		{Path: "/m/5.mp3", Title: "Zero"},
	} {
		testsupport.SeedTrack(t, store, tr)
	}

	idx, err := playlist.NewIndex(context.Background(), store, fixedScorer(map[string]float64{
		"Low": 0.2, "TieA": 0.5, "High": 0.9, "TieB": 0.5,
	}))
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}
	if idx.Len() != 5 {
		t.Fatalf("expected 5 entries, got %d", idx.Len())
	}

	got := idx.Rank("key", 3)
	want := []string{"/m/3.mp3", "/m/2.mp3", "/m/4.mp3"}
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %#v", len(want), got)
	}
	for i := range want {
		if got[i].Path != want[i] {
			t.Fatalf("rank %d = %s, want %s", i, got[i].Path, want[i])
		}
	}
	all := idx.Rank("key", 10)
	if len(all) != 5 || all[4].Path != "/m/5.mp3" || all[4].Score != 0 {
		t.Fatalf("expected zero score ranked last, got %#v", all)
	}
}

func TestIndexRankWithSimilarity(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedTrack(t, store, catalog.Track{Path: "/m/a.mp3", Title: "Plug In Baby"})
	testsupport.SeedTrack(t, store, catalog.Track{Path: "/m/b.mp3", Title: "Hysteria"})

	idx, err := playlist.NewIndex(context.Background(), store, nil)
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}
	got := idx.Rank("Plug In Baby", 1)
	if len(got) != 1 || got[0].Path != "/m/a.mp3" || got[0].Score != 1 {
		t.Fatalf("unexpected ranking: %#v", got)
	}
}

type fixture struct {
	store  *catalog.Store
	dir    string
	list   string
	target string
}

func newFixture(t *testing.T, content string) fixture {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithPlaylistDirectory("lists"))
	store := testsupport.MustOpenStore(t, cfg)

	target := filepath.Join(cfg.Files.MusicDirectory, "Muse", "Plug In Baby.flac")
	testsupport.WriteFile(t, target, 8)
	testsupport.SeedTrack(t, store, catalog.Track{Path: target, Artist: "Muse", Title: "Target"})

	list := filepath.Join(cfg.Files.PlaylistDirectory, "Road Trip.m3u")
	testsupport.WriteText(t, list, content)
	return fixture{store: store, dir: cfg.Files.PlaylistDirectory, list: list, target: target}
}

func TestRunAutoReplacesAtThreshold(t *testing.T) {
	f := newFixture(t, "#EXTM3U\nold/Muse - Plug In Baby.mp3\n")
	r := &playlist.Reconciler{
		Store:  f.store,
		Logger: logging.NewNop(),
		Scorer: fixedScorer(map[string]float64{"Target": 0.90}),
	}

	res, err := r.Run(context.Background(), f.dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Playlists != 1 || res.Added != 1 || res.Broken != 1 || res.AutoReplaced != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := testsupport.ReadText(t, f.list); got != "#EXTM3U\n"+f.target+"\n" {
		t.Fatalf("unexpected playlist %q", got)
	}

	paths, err := f.store.QueryPlaylistPaths(context.Background())
	if err != nil || len(paths) != 1 || paths[0] != f.list {
		t.Fatalf("expected playlist indexed, got %v %v", paths, err)
	}
}

func TestRunBelowThresholdHeadlessIsUntouchedAndIdempotent(t *testing.T) {
	content := "#EXTM3U\r\nold/Muse - Plug In Baby.mp3\r\n"
	f := newFixture(t, content)
	r := &playlist.Reconciler{
		Store:   f.store,
		Chooser: prompt.Default{},
		Logger:  logging.NewNop(),
		Scorer:  fixedScorer(map[string]float64{"Target": 0.89}),
	}

	for i := 0; i < 2; i++ {
		res, err := r.Run(context.Background(), f.dir)
		if err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
		if res.Skipped != 1 || res.AutoReplaced != 0 {
			t.Fatalf("run %d: unexpected result %+v", i, res)
		}
		if got := testsupport.ReadText(t, f.list); got != content {
			t.Fatalf("run %d modified playlist: %q", i, got)
		}
	}
}

func TestRunPromptsAndReplaces(t *testing.T) {
	f := newFixture(t, "old/Muse - Plug In Baby.mp3\n")
	chooser := &prompt.Scripted{Answers: []string{f.target}}
	r := &playlist.Reconciler{
		Store:   f.store,
		Chooser: chooser,
		Logger:  logging.NewNop(),
		Scorer:  fixedScorer(map[string]float64{"Target": 0.5}),
	}

	res, err := r.Run(context.Background(), f.dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Replaced != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(chooser.Prompts) != 1 || chooser.Prompts[0] != "Select a replacement for 'Muse - Plug In Baby.mp3':" {
		t.Fatalf("unexpected prompts: %v", chooser.Prompts)
	}
	if got := testsupport.ReadText(t, f.list); got != f.target+"\n" {
		t.Fatalf("unexpected playlist %q", got)
	}
}

func TestRunPromptRemove(t *testing.T) {
	f := newFixture(t, "#EXTM3U\nold/gone.mp3\nold/gone.mp3\n")
	r := &playlist.Reconciler{
		Store:   f.store,
		Chooser: &prompt.Scripted{Answers: []string{"Remove", "Skip"}},
		Logger:  logging.NewNop(),
		Scorer:  fixedScorer(map[string]float64{"Target": 0.3}),
	}

	res, err := r.Run(context.Background(), f.dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Broken != 2 || res.Removed != 1 || res.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := testsupport.ReadText(t, f.list); got != "#EXTM3U\nold/gone.mp3\n" {
		t.Fatalf("unexpected playlist %q", got)
	}
}

func TestRunUnresolvedWhenCatalogEmpty(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPlaylistDirectory("lists"))
	store := testsupport.MustOpenStore(t, cfg)
	list := filepath.Join(cfg.Files.PlaylistDirectory, "mix.m3u")
	testsupport.WriteText(t, list, "old/gone.mp3\n")

	r := &playlist.Reconciler{Store: store, Logger: logging.NewNop()}
	res, err := r.Run(context.Background(), cfg.Files.PlaylistDirectory)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Unresolved != 1 || res.Skipped != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := testsupport.ReadText(t, list); got != "old/gone.mp3\n" {
		t.Fatalf("unexpected playlist %q", got)
	}
}

func TestRunOffersZeroScoreCandidates(t *testing.T) {
	f := newFixture(t, "old/gone.mp3\n")
	chooser := &prompt.Scripted{Answers: []string{f.target}}
	r := &playlist.Reconciler{
		Store:   f.store,
		Chooser: chooser,
		Logger:  logging.NewNop(),
		Scorer:  fixedScorer(nil),
	}

	res, err := r.Run(context.Background(), f.dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Replaced != 1 || res.Unresolved != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := testsupport.ReadText(t, f.list); got != f.target+"\n" {
		t.Fatalf("unexpected playlist %q", got)
	}
}

func TestRunBareFileNameKeepsExtension(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPlaylistDirectory("lists"))
	store := testsupport.MustOpenStore(t, cfg)
	target := filepath.Join(cfg.Files.MusicDirectory, "Imagine.flac")
	testsupport.WriteFile(t, target, 8)
	testsupport.SeedTrack(t, store, catalog.Track{Path: target, Artist: "John Lennon", Title: "Imagine"})

	content := "old/Imagine.mp3\n"
	list := filepath.Join(cfg.Files.PlaylistDirectory, "classics.m3u")
	testsupport.WriteText(t, list, content)

	// "Imagine.mp3" against "Imagine" scores 0.8788, below the default threshold.
	r := &playlist.Reconciler{Store: store, Chooser: prompt.Default{}, Logger: logging.NewNop()}
	res, err := r.Run(context.Background(), cfg.Files.PlaylistDirectory)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.AutoReplaced != 0 || res.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := testsupport.ReadText(t, list); got != content {
		t.Fatalf("headless run modified playlist: %q", got)
	}
}

func TestRunLeavesPlaylistsOutsideDirAlone(t *testing.T) {
	f := newFixture(t, "#EXTM3U\n")
	ctx := context.Background()

	otherDir := filepath.Join(filepath.Dir(f.dir), "other")
	other := filepath.Join(otherDir, "b.m3u")
	content := "old/Muse - Plug In Baby.mp3\n"
	testsupport.WriteText(t, other, content)
	if _, err := f.store.UpsertPlaylist(ctx, "b", other); err != nil {
		t.Fatalf("UpsertPlaylist failed: %v", err)
	}

	r := &playlist.Reconciler{
		Store:  f.store,
		Logger: logging.NewNop(),
		Scorer: fixedScorer(map[string]float64{"Target": 1}),
	}
	res, err := r.Run(ctx, f.dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Playlists != 1 || res.Broken != 0 || res.AutoReplaced != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := testsupport.ReadText(t, other); got != content {
		t.Fatalf("playlist outside dir was rewritten: %q", got)
	}

	paths, err := f.store.QueryPlaylistPaths(ctx)
	if err != nil || len(paths) != 2 {
		t.Fatalf("expected both playlists still recorded, got %v %v", paths, err)
	}
}

func TestRunIgnoresIntactReferencesAndPrunes(t *testing.T) {
	f := newFixture(t, "")
	testsupport.WriteText(t, f.list, f.target+"\n")
	stale := filepath.Join(f.dir, "old.m3u8")
	testsupport.WriteText(t, stale, "")

	r := &playlist.Reconciler{Store: f.store, Logger: logging.NewNop()}
	ctx := context.Background()
	if _, err := r.Run(ctx, f.dir); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if err := os.Remove(stale); err != nil {
		t.Fatal(err)
	}

	res, err := r.Run(ctx, f.dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Pruned != 1 || res.Broken != 0 || res.Playlists != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}
