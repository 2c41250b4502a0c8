package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-canvas/internal/platform/tui"
	"github.com/vovakirdan/tui-canvas/internal/registry"
	"github.com/vovakirdan/tui-canvas/internal/storage"
)

var (
	flagStatsLimit int
	flagStatsClear bool
	flagStatsBoard bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [scene]",
	Short: "Show recorded session statistics",
	Long: `Display presentation statistics recorded by finished sessions.

Without a scene, prints one aggregate line per scene. With a scene, lists
its most recent sessions.

Examples:
  canvas stats
  canvas stats rain
  canvas stats rain --limit 5
  canvas stats rain --clear
  canvas stats --board`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of sessions to show")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete the recorded sessions of the scene")
	statsCmd.Flags().BoolVar(&flagStatsBoard, "board", false, "Open the interactive stats board")
}

func runStats(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig(cmd)

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagStatsBoard {
		w, h := tui.TerminalSize(os.Stdout)
		if _, err := tui.RunStats(store, w, h); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if len(args) == 0 {
		if flagStatsClear {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a scene")
			return
		}
		printAllScenes(store)
		return
	}

	sceneID := args[0]
	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'canvas list' to see available scenes.")
		return
	}

	if flagStatsClear {
		if err := store.ClearSessions(sceneID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared sessions for %s\n", sceneID)
		return
	}

	printScene(store, sceneID)
}

func printAllScenes(store *storage.Store) {
	all, err := store.GetAllScenesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'canvas play <scene>' to record one.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-10s  %8s  %10s  %12s  %9s  %s\n", "Scene", "Sessions", "Frames", "Bytes", "B/frame", "Last played")
	fmt.Printf("  %-10s  %8s  %10s  %12s  %9s  %s\n", "-----", "--------", "------", "-----", "-------", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-10s  %8d  %10d  %12d  %9.1f  %s\n",
			id, s.Sessions, s.TotalFrames, s.TotalBytes, s.BytesPerFrame, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printScene(store *storage.Store, sceneID string) {
	sessions, err := store.RecentSessions(sceneID, flagStatsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		return
	}

	fmt.Printf("Sessions - %s\n", sceneID)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'canvas play %s' to record one.\n", sceneID)
		return
	}

	fmt.Printf("  %-5s  %-9s  %7s  %5s  %5s  %5s  %10s  %7s  %6s  %8s  %s\n",
		"ID", "Size", "Frames", "Full", "Dirty", "Idle", "Bytes", "Dropped", "Errors", "Duration", "Date")
	for _, s := range sessions {
		fmt.Printf("  %-5d  %-9s  %7d  %5d  %5d  %5d  %10d  %7d  %6d  %8s  %s\n",
			s.ID, fmt.Sprintf("%dx%d", s.Width, s.Height), s.Frames, s.FullFrames, s.DirtyFrames, s.IdleFrames,
			s.Bytes, s.Dropped, s.SinkErrors, s.Duration.Round(time.Second), s.CreatedAt.Format("2006-01-02 15:04"))
	}

	if summary, err := store.GetSceneStats(sceneID); err == nil && summary.Sessions > 0 {
		fmt.Println()
		fmt.Printf("Average: %.1f bytes/frame over %d frames\n", summary.BytesPerFrame, summary.TotalFrames)
	}
}
