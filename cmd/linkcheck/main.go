// Command linkcheck evaluates location links the way station registration
// does and prints one verdict per link. Links are read from the arguments,
// or from stdin one per line when no arguments are given.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"rapidaid-dashboard-service/internal/adapters/cache"
	"rapidaid-dashboard-service/internal/adapters/resolver"
	"rapidaid-dashboard-service/internal/config"
	"rapidaid-dashboard-service/internal/geolink"
	"rapidaid-dashboard-service/internal/services"
	"time"
)

func main() {
	config.LoadDotEnv()

	expand := flag.Bool("expand", false, "follow short links to find their coordinates")
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	validator := geolink.NewValidator(cfg.Region, cfg.MapLinkHosts)
	links := services.NewLinkService(validator, nil, nil, nil)
	if *expand {
		linkResolver := resolver.NewHTTPLinkResolver(5*time.Second, services.ShortLinkHostnames(cfg.ShortLinkHosts)...)
		links = services.NewLinkService(validator, linkResolver, cache.NewMemoryLinkCache(), nil).
			WithShortLinkHosts(cfg.ShortLinkHosts)
	}

	inputs := flag.Args()
	if len(inputs) == 0 {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			inputs = append(inputs, sc.Text())
		}
		if err := sc.Err(); err != nil {
			log.Fatalf("read stdin: %v", err)
		}
	}

	ctx := context.Background()
	rejected := 0
	for _, link := range inputs {
		fb := links.Evaluate(ctx, link)
		if !fb.Valid {
			rejected++
		}
		fmt.Println(formatVerdict(link, fb))
	}

	if rejected > 0 {
		os.Exit(1)
	}
}

// loadConfig reads only the link-related settings; the store settings do
// not apply to this tool.
func loadConfig() (config.Config, error) {
	if os.Getenv("STORE") == "" {
		if err := os.Setenv("STORE", config.StoreMemory); err != nil {
			return config.Config{}, err
		}
	}
	return config.Load()
}

func formatVerdict(link string, fb geolink.Feedback) string {
	coords := "-"
	if fb.Coordinates != nil {
		coords = fb.Coordinates.String()
	}
	return fmt.Sprintf("%-7s valid=%t coords=%s link=%q msg=%q", fb.Category, fb.Valid, coords, link, fb.Message)
}
