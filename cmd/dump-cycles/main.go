package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gitlandbot/internal/board"
	"gitlandbot/internal/journal"
	"gitlandbot/internal/render"
)

func main() {
	dbPath := flag.String("db", "data/cycles.db", "Path to the cycle journal")
	agent := flag.String("agent", "", "Only show cycles of this agent")
	limit := flag.Int("limit", 20, "Maximum number of cycles (0 for all)")
	asJSON := flag.Bool("json", false, "Print raw reports as JSON")
	flag.Parse()

	if _, err := os.Stat(*dbPath); os.IsNotExist(err) {
		log.Fatalf("Journal not found at %s", *dbPath)
	}

	j, err := journal.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open journal: %v", err)
	}
	defer j.Close()

	cycles, err := j.Cycles(context.Background(), journal.Query{Agent: *agent, Limit: *limit})
	if err != nil {
		log.Fatalf("Failed to query cycles: %v", err)
	}

	for _, c := range cycles {
		if *asJSON {
			formatted, _ := json.MarshalIndent(c, "", "  ")
			fmt.Println(string(formatted))
			continue
		}

		fmt.Printf("Cycle ID: %s\n", c.ID)
		fmt.Printf("Agent: %s (%s) at %v\n", c.Agent, c.Team, c.Position)
		fmt.Printf("Time: %s\n", c.DecidedAt.Format(time.RFC822))
		if c.Strategy != "" {
			fmt.Printf("Move: %s via %s toward %v\n", c.Move, c.Strategy, *c.Target)
		} else {
			fmt.Printf("Move: %s\n", c.Move)
		}

		grid, _, err := board.Parse([]byte(c.Board), nil)
		if err != nil {
			fmt.Printf("Board unreadable: %v\n", err)
		} else {
			fmt.Print(render.Board(grid, c.Position))
		}
		fmt.Println(render.Stats(c.Counters))
		fmt.Println("--------------------------------------------------")
	}

	fmt.Printf("Total cycles found: %d\n", len(cycles))
}
