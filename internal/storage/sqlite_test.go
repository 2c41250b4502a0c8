package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	rec := SessionRecord{
		SceneID:     "bounce",
		Width:       80,
		Height:      24,
		Frames:      300,
		FullFrames:  1,
		DirtyFrames: 290,
		IdleFrames:  9,
		Bytes:       12345,
		Dropped:     2,
		SinkErrors:  1,
		Duration:    10*time.Second + 250*time.Millisecond,
	}

	id, err := store.SaveSession(rec)
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	got, err := store.SessionByID(id)
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("SessionByID() returned nil for saved session")
	}

	if got.SceneID != "bounce" || got.Width != 80 || got.Height != 24 {
		t.Errorf("unexpected identity fields: %+v", got)
	}
	if got.Frames != 300 || got.FullFrames != 1 || got.DirtyFrames != 290 || got.IdleFrames != 9 {
		t.Errorf("unexpected frame counts: %+v", got)
	}
	if got.Bytes != 12345 || got.Dropped != 2 || got.SinkErrors != 1 {
		t.Errorf("unexpected output counts: %+v", got)
	}
	if got.Duration != rec.Duration {
		t.Errorf("Duration = %v, expected %v", got.Duration, rec.Duration)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}
}

func TestStoreSessionByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.SessionByID(42)
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing session, got %+v", got)
	}
}

func TestStoreRecentSessionsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveSession(SessionRecord{SceneID: "rain", Frames: (i + 1) * 10})
	}
	store.SaveSession(SessionRecord{SceneID: "banner", Frames: 7})

	recs, err := store.RecentSessions("rain", 3)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("Expected 3 sessions with limit, got %d", len(recs))
	}

	// Same timestamp resolution, so id breaks the tie: newest first
	if recs[0].Frames != 50 || recs[1].Frames != 40 || recs[2].Frames != 30 {
		t.Errorf("Sessions not in expected order: %+v", recs)
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)

	store.SaveSession(SessionRecord{SceneID: "rain"})
	store.SaveSession(SessionRecord{SceneID: "rain"})
	store.SaveSession(SessionRecord{SceneID: "bounce"})

	if err := store.ClearSessions("rain"); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	rain, _ := store.RecentSessions("rain", 10)
	if len(rain) != 0 {
		t.Errorf("Expected 0 rain sessions after clear, got %d", len(rain))
	}

	bounce, _ := store.RecentSessions("bounce", 10)
	if len(bounce) != 1 {
		t.Errorf("Bounce sessions should not be affected by clearing rain")
	}
}

func TestStoreSceneStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetSceneStats("bounce")
	if err != nil {
		t.Fatalf("GetSceneStats() failed: %v", err)
	}
	if empty.Sessions != 0 || empty.BytesPerFrame != 0 {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveSession(SessionRecord{SceneID: "bounce", Frames: 100, Bytes: 1000, FullFrames: 1})
	store.SaveSession(SessionRecord{SceneID: "bounce", Frames: 100, Bytes: 3000, FullFrames: 2})

	stats, err := store.GetSceneStats("bounce")
	if err != nil {
		t.Fatalf("GetSceneStats() failed: %v", err)
	}
	if stats.Sessions != 2 || stats.TotalFrames != 200 || stats.TotalBytes != 4000 || stats.FullFrames != 3 {
		t.Errorf("unexpected aggregate: %+v", stats)
	}
	if stats.BytesPerFrame != 20 {
		t.Errorf("BytesPerFrame = %v, expected 20", stats.BytesPerFrame)
	}
}

func TestStoreAllScenesStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveSession(SessionRecord{SceneID: "bounce", Frames: 10, Bytes: 100})
	store.SaveSession(SessionRecord{SceneID: "rain", Frames: 20, Bytes: 100})

	all, err := store.GetAllScenesStats()
	if err != nil {
		t.Fatalf("GetAllScenesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(all))
	}
	if all["rain"].BytesPerFrame != 5 {
		t.Errorf("rain BytesPerFrame = %v, expected 5", all["rain"].BytesPerFrame)
	}
}

func TestSessionRecordBytesPerFrame(t *testing.T) {
	if (SessionRecord{}).BytesPerFrame() != 0 {
		t.Error("zero frames should give zero bytes per frame")
	}
	if got := (SessionRecord{Frames: 4, Bytes: 10}).BytesPerFrame(); got != 2.5 {
		t.Errorf("BytesPerFrame() = %v, expected 2.5", got)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreAddsSinkErrorsToOldSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	_, err = db.Exec(`CREATE TABLE sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scene_id TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		frames INTEGER NOT NULL DEFAULT 0,
		full_frames INTEGER NOT NULL DEFAULT 0,
		dirty_frames INTEGER NOT NULL DEFAULT 0,
		idle_frames INTEGER NOT NULL DEFAULT 0,
		bytes INTEGER NOT NULL DEFAULT 0,
		dropped INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		t.Fatalf("create old schema: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO sessions (scene_id, width, height, frames) VALUES ('rain', 10, 5, 3)`); err != nil {
		t.Fatalf("insert old row: %v", err)
	}
	db.Close()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on old schema failed: %v", err)
	}
	defer store.Close()

	id, err := store.SaveSession(SessionRecord{SceneID: "rain", Width: 10, Height: 5, Frames: 4, SinkErrors: 2})
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	recs, err := store.RecentSessions("rain", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(recs))
	}
	for _, rec := range recs {
		want := 0
		if rec.ID == id {
			want = 2
		}
		if rec.SinkErrors != want {
			t.Errorf("session %d SinkErrors = %d, expected %d", rec.ID, rec.SinkErrors, want)
		}
	}
}
