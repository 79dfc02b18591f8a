// Command dump-snapshot prints a persisted match's final state from the
// match_history table.
package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

func main() {
	var dbPath string

	root := &cobra.Command{
		Use:   "dump-snapshot [matchId]",
		Short: "Print persisted match snapshots from the match history table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var matchID string
			if len(args) == 1 {
				matchID = args[0]
			}
			return run(dbPath, matchID)
		},
	}
	root.Flags().StringVar(&dbPath, "db", "badicecream.db", "path to the sqlite database")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(dbPath, matchID string) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("database not found at %s", dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	query := `SELECT id, started_at, ended_at, level, map_name, host_id, guest_id, result, snapshot_json
	          FROM match_history`
	var rows *sql.Rows
	if matchID != "" {
		rows, err = db.Query(query+" WHERE id = ? ORDER BY started_at DESC", matchID)
	} else {
		rows, err = db.Query(query + " ORDER BY started_at DESC")
	}
	if err != nil {
		return fmt.Errorf("query match history: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id, mapName, hostID, guestID, result, snapshotJSON string
		var startedAt, endedAt time.Time
		var level int

		if err := rows.Scan(&id, &startedAt, &endedAt, &level, &mapName, &hostID, &guestID, &result, &snapshotJSON); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}

		fmt.Printf("Match ID: %s\n", id)
		fmt.Printf("Time: %s - %s\n", startedAt.Format(time.RFC822), endedAt.Format(time.RFC822))
		fmt.Printf("Level %d (%s)\n", level, mapName)
		fmt.Printf("Players: %s vs %s\n", hostID, guestID)
		fmt.Printf("Result: %s\n", result)

		var snapshot any
		if err := json.Unmarshal([]byte(snapshotJSON), &snapshot); err == nil {
			formatted, _ := json.MarshalIndent(snapshot, "", "  ")
			fmt.Println(string(formatted))
		} else {
			fmt.Println(snapshotJSON)
		}
		fmt.Println("--------------------------------------------------")
		count++
	}

	fmt.Printf("Total matches found: %d\n", count)
	return nil
}
