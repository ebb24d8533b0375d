// marketbrowse is a terminal front end for the listing core. It drives the
// same controller the tests drive, against a live relay or the upstream API
// directly.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lucasreis/polyview/internal/config"
	"github.com/lucasreis/polyview/internal/models"
	"github.com/lucasreis/polyview/internal/polymarket"
	"github.com/lucasreis/polyview/internal/viewer"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	rules, err := models.LoadCategoryRules(cfg.CategoryRules)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.CategoryRules).Msg("Failed to load category rules")
	}

	client := polymarket.NewClient(polymarket.Options{
		BaseURL:    cfg.UpstreamURL,
		Timeout:    cfg.UpstreamTimeout,
		RetryCount: cfg.UpstreamRetries,
	})

	ctrl := viewer.New(client, viewer.WithCategoryRules(rules))

	ctx := context.Background()
	ctrl.Load(ctx)
	printPage(ctrl)

	fmt.Println(`Commands: search <term> | category <name> | status <active|closed> | volume <min> <max> | clear | next | prev | open <id> | categories | refresh | quit`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "q":
			return
		case "search":
			ctrl.SetSearch(strings.Join(args, " "))
		case "category":
			ctrl.SetCategory(strings.Join(args, " "))
		case "status":
			status := ""
			if len(args) > 0 {
				status = args[0]
			}
			ctrl.SetStatus(status)
		case "volume":
			min, max := "", ""
			if len(args) > 0 {
				min = args[0]
			}
			if len(args) > 1 {
				max = args[1]
			}
			ctrl.SetVolumeBounds(min, max)
		case "clear":
			ctrl.ClearFilters()
		case "next":
			ctrl.NextPage()
		case "prev":
			ctrl.PrevPage()
		case "refresh":
			ctrl.Refresh(ctx)
		case "categories":
			for _, c := range ctrl.Categories() {
				fmt.Println("  " + c)
			}
			continue
		case "open":
			if len(args) == 0 {
				fmt.Println("usage: open <id>")
				continue
			}
			detail, err := ctrl.OpenMarket(ctx, args[0])
			if err != nil {
				fmt.Println("Failed to load market details.")
				continue
			}
			printDetail(detail)
			continue
		default:
			fmt.Println("unknown command:", cmd)
			continue
		}

		printPage(ctrl)
	}
}

func printPage(ctrl *viewer.Controller) {
	if notice := ctrl.Notice(); notice != "" {
		fmt.Println("! " + notice)
	}

	page := ctrl.CurrentPage()
	if page.NoResults {
		fmt.Println("No markets found. Try adjusting your search criteria or filters.")
		return
	}

	for _, card := range page.Cards {
		fmt.Printf("[%s] %s  $%s (%s, %s)\n",
			card.ID, renderSpans(card.Title), card.Volume, card.VolumeTier, card.Status)
		fmt.Println("    " + card.Description)
		for _, o := range card.Outcomes {
			fmt.Printf("    %-20s %s\n", o.Name, o.Price)
		}
	}

	stats := ctrl.Stats()
	fmt.Printf("Page %d of %d | %d of %d markets | volume total $%s avg $%s\n",
		page.Number, page.TotalPages, stats.Filtered, stats.Total,
		viewer.FormatAmount(stats.TotalVolume), viewer.FormatAmount(stats.AvgVolume))
}

func printDetail(d *viewer.Detail) {
	fmt.Println(d.Title)
	fmt.Println("  Description: " + d.Description)
	fmt.Println("  Category:    " + d.Category)
	fmt.Println("  Status:      " + d.Status)
	fmt.Println("  Volume:      $" + d.Volume)
	if d.CreatedTime != "" {
		fmt.Println("  Created:     " + d.CreatedTime)
	}
	if d.CloseTime != "" {
		fmt.Println("  Closes:      " + d.CloseTime)
	}
	fmt.Println("  Slug:        " + d.Slug)
	for _, o := range d.Outcomes {
		fmt.Printf("  %-20s %s\n", o.Name, o.Price)
	}
}

// renderSpans marks search hits in the title with brackets.
func renderSpans(spans []viewer.Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Match {
			b.WriteString("[" + s.Text + "]")
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
