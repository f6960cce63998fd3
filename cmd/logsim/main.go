// Package main replays a recorded game log into a target file at a
// configurable pace, for exercising the companion pipeline without a
// running game. It can also truncate the target mid-replay to reproduce
// the game client's log rotation.
package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"time"
)

func main() {
	source := flag.String("source", "", "recorded log file to replay")
	target := flag.String("target", "Logs/Power.log", "file the companion tails")
	delay := flag.Duration("delay", 20*time.Millisecond, "pause between lines")
	truncateAfter := flag.Int("truncate-after", 0, "truncate the target after N lines (0 = never)")
	flag.Parse()

	if *source == "" {
		log.Fatal("usage: logsim -source <recorded.log> [-target <file>] [-delay <dur>] [-truncate-after <n>]")
	}

	in, err := os.Open(*source)
	if err != nil {
		log.Fatalf("could not open source: %v", err)
	}
	defer in.Close()

	out, err := os.OpenFile(*target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("could not open target: %v", err)
	}
	defer out.Close()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	written := 0
	for scanner.Scan() {
		if _, err := out.WriteString(scanner.Text() + "\n"); err != nil {
			log.Fatalf("write failed: %v", err)
		}
		written++

		if *truncateAfter > 0 && written == *truncateAfter {
			log.Printf("truncating %s after %d lines", *target, written)
			if err := out.Truncate(0); err != nil {
				log.Fatalf("truncate failed: %v", err)
			}
			if _, err := out.Seek(0, 0); err != nil {
				log.Fatalf("seek failed: %v", err)
			}
		}
		time.Sleep(*delay)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read failed: %v", err)
	}
	log.Printf("replayed %d lines into %s", written, *target)
}
