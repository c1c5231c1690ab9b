package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show play statistics for every game",
	Long: `Display games played, distinct sessions, best and average score
for every game with at least one recorded score.`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	if len(all) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-16s  %6s  %8s  %8s  %8s  %s\n", "Game", "Played", "Sessions", "Best", "Average", "Last played")
	fmt.Printf("  %-16s  %6s  %8s  %8s  %8s  %s\n", "----", "------", "--------", "----", "-------", "-----------")

	for _, id := range ids {
		s := all[id]
		title := id
		if registry.Exists(id) {
			title = registry.Info(id).Title
		}
		last := "-"
		if !s.LastPlayed.IsZero() {
			last = s.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-16s  %6d  %8d  %8d  %8.1f  %s\n", title, s.GamesCount, s.Sessions, s.HighScore, s.AvgScore, last)
	}
}
