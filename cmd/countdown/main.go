// Command countdown renders a single countdown image to a file.
//
// Usage:
//
//	countdown -target 2026-12-31T23:59:59Z -label "Sale ends in" -output sale.png
//	countdown -target 2026-12-31 -animated -output sale.gif
package main

import (
	"context"
	"flag"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/gogpu/countdown"
)

func main() {
	var (
		target   = flag.String("target", "", "target date, e.g. 2026-12-31T23:59:59Z")
		label    = flag.String("label", "", "headline above the countdown")
		sub      = flag.String("sub", "", "optional line below the countdown")
		accent   = flag.String("accent", "", "accent bar color (#RGB or #RRGGBB)")
		bg       = flag.String("bg", "", "background color")
		fg       = flag.String("text", "", "text color")
		animated = flag.Bool("animated", false, "render a looping GIF")
		at       = flag.String("at", "", "render as of this instant instead of now")
		config   = flag.String("config", "", "YAML config file")
		output   = flag.String("output", "countdown.png", "output file")
	)
	flag.Parse()

	cfg := countdown.DefaultConfig()
	if *config != "" {
		c, err := countdown.LoadConfigFile(*config)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *c
	}
	cfg.ApplyEnv(os.LookupEnv)

	now := time.Now
	if *at != "" {
		t, err := countdown.ParseTarget(*at)
		if err != nil {
			log.Fatalf("Invalid -at: %v", err)
		}
		now = func() time.Time { return t }
	}

	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("target", *target)
	set("label", *label)
	set("sub", *sub)
	set("accent", *accent)
	set("bg", *bg)
	set("text", *fg)
	if *animated {
		q.Set("animated", "1")
	}

	b := countdown.NewBuilder(cfg, countdown.WithClock(now))
	resp, err := b.Build(context.Background(), q)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if resp.Status != 200 {
		log.Fatalf("Rejected: %s", resp.Body)
	}
	if err := os.WriteFile(*output, resp.Body, 0o644); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Countdown saved to %s (%s, %d bytes)\n", *output, resp.Header.Get("Content-Type"), len(resp.Body))
}
