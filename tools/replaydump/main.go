package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"armory-server/internal/domain"
	"armory-server/internal/infrastructure/storage"

	"github.com/spf13/pflag"
)

func main() {
	var (
		asJSON bool
		from   int
		to     int
		player string
	)
	pflag.BoolVar(&asJSON, "json", false, "Print the whole replay as JSON")
	pflag.IntVar(&from, "from", 0, "First tick to print")
	pflag.IntVar(&to, "to", -1, "Last tick to print (-1 for all)")
	pflag.StringVarP(&player, "player", "p", "", "Only actions of this player")
	pflag.Usage = printHelp
	pflag.Parse()

	if pflag.NArg() != 1 {
		printHelp()
		os.Exit(2)
	}

	rs, err := storage.LoadFile(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rs); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("seed:      %d\n", rs.Seed)
	fmt.Printf("tick rate: %d\n", rs.TickRate)
	fmt.Printf("recorded:  %s\n", time.Unix(rs.Timestamp, 0).Format(time.RFC3339))
	fmt.Printf("actions:   %d (last tick %d, %s)\n", len(rs.Actions), rs.LastTick(), gameTime(rs, rs.LastTick()))
	fmt.Println()

	for _, a := range rs.Actions {
		if a.Tick < from || (to >= 0 && a.Tick > to) {
			continue
		}
		if player != "" && string(a.Token) != player {
			continue
		}
		fmt.Printf("%6d  %-10s %-12s %-14s %s\n", a.Tick, gameTime(rs, a.Tick), a.Token, a.Action, payload(a))
	}
}

// gameTime переводит тик в игровое время.
func gameTime(rs *domain.ReplaySession, tick int) time.Duration {
	if rs.TickRate <= 0 {
		return 0
	}
	return (time.Duration(tick) * time.Second / time.Duration(rs.TickRate)).Round(time.Millisecond)
}

func payload(a domain.ReplayAction) string {
	if len(a.Payload) == 0 {
		return "-"
	}
	return string(a.Payload)
}

func printHelp() {
	fmt.Fprintln(os.Stderr, `replaydump - просмотр записи .wirp
Usage:
  replaydump [flags] <file.wirp>
Flags:`)
	pflag.PrintDefaults()
}
