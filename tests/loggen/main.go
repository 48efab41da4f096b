// loggen writes synthetic per-chat JSON log files into a directory, the way
// the upstream scraper does: each tick it appends a few messages to a random
// group file and rewrites the whole array. Useful for manual end-to-end runs
// against a locally started daemon.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

var groups = []string{"Ops Team A", "Ops Team B", "Gate Security"}

var texts = []string{
	"hello there",
	"rescue needed near gate 2",
	"[Audio]",
	"[Image] scan this qr for the canteen",
	"please send allowance for travel",
	"driver waiting for support",
	"KA05HH1234 entered the yard",
	"truck 4321 at the weighbridge",
	"package missing from bay 7",
	"all clear, nothing to report",
	"https://maps.app.goo.gl/abc123 come fast",
}

type message struct {
	Time string `json:"time"`
	Text string `json:"text"`
}

func main() {
	dir := flag.String("dir", "./logs", "directory the daemon watches")
	interval := flag.Duration("interval", 2*time.Second, "delay between writes")
	count := flag.Int("count", 50, "number of messages to emit in total")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "loggen: %s\n", err)
		os.Exit(1)
	}

	logs := make(map[string][]message)
	senders := []string{"Ayush Tulshan", "Priya N", "Gate Desk"}

	for i := 0; i < *count; i++ {
		group := groups[rand.Intn(len(groups))]
		now := time.Now()
		msg := message{
			Time: fmt.Sprintf("[%02d:%02d, %d/%d/%d] %s:",
				now.Hour(), now.Minute(), now.Day(), int(now.Month()), now.Year(),
				senders[rand.Intn(len(senders))]),
			Text: texts[rand.Intn(len(texts))],
		}
		logs[group] = append(logs[group], msg)

		path := filepath.Join(*dir, group+".json")
		data, err := json.Marshal(logs[group])
		if err != nil {
			fmt.Fprintf(os.Stderr, "loggen: %s\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "loggen: %s\n", err)
			os.Exit(1)
		}

		fmt.Printf("wrote %d messages to %s\n", len(logs[group]), path)
		time.Sleep(*interval)
	}
}
