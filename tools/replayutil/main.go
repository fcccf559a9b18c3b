package main

import (
	"encoding/json"
	"fmt"
	"os"
	"tactics-server/internal/infrastructure/storage"
	"time"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	rs, err := storage.LoadFile(os.Args[2])
	if err != nil {
		fmt.Printf("Cannot read replay: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "info":
		outcome := rs.Outcome
		if outcome == "" {
			outcome = "unknown"
		}
		fmt.Printf("scenario: %s\nseed:     %d\nrecorded: %s\noutcome:  %s\nactions:  %d\n",
			rs.Scenario,
			rs.Seed,
			time.Unix(rs.Timestamp, 0).UTC().Format(time.RFC3339),
			outcome,
			len(rs.Actions),
		)
	case "actions":
		for i, act := range rs.Actions {
			payload := string(act.Payload)
			if payload == "" {
				payload = "-"
			}
			fmt.Printf("%4d  turn %-4d %-9s %s\n", i+1, act.Turn, act.Action, payload)
		}
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rs); err != nil {
			fmt.Printf("Encode failed: %v\n", err)
			os.Exit(1)
		}
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println(`Replay Utility - просмотр файлов .tcrp
Commands:
  info <file>      - сценарий, зерно, время записи и итог
  actions <file>   - список записанных команд по ходам
  json <file>      - вся запись в JSON`)
}
