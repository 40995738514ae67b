package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/swims/storefront/internal/catalog"
	"github.com/swims/storefront/internal/commerce"
	"github.com/swims/storefront/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-book/main.go <query> [all|title|author|publisher] [sort] [asc|desc]")
		fmt.Println("Example: go run cmd/find-book/main.go \"Orwell\" author rating desc")
		os.Exit(1)
	}

	query := os.Args[1]
	arg := func(i int) string {
		if len(os.Args) > i {
			return os.Args[i]
		}
		return ""
	}

	scope, err := catalog.ParseScope(arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	sort, err := catalog.ParseSort(arg(3), arg(4))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := commerce.NewClient(cfg.Commerce, logger)
	engine := catalog.NewEngine(client, client, cfg.Catalog, logger)

	fmt.Printf("🔍 Searching %s for: %s\n\n", scope, query)

	res, err := engine.Search(context.Background(), catalog.Query{
		Text:  query,
		Scope: scope,
		Sort:  sort,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}

	if len(res.Books) == 0 {
		fmt.Printf("❌ No books found for: %s\n", query)
		os.Exit(1)
	}

	for _, b := range res.Books {
		rating := "없음"
		if r, ok := res.Ratings[b.ID]; ok {
			rating = fmt.Sprintf("%.1f", r)
		}
		fmt.Printf("✅ [%d] %s\n", b.ID, b.Title)
		fmt.Printf("   Author: %s | Publisher: %s | Genre: %s\n", b.Author, b.Publisher, b.Genre)
		fmt.Printf("   Price: %d원 | Rating: %s | Comments: %d\n", b.Price, rating, b.CommentCount)
	}
	fmt.Printf("\n%s\n", strings.Repeat("-", 40))
	fmt.Printf("Found %d book(s)\n", len(res.Books))
}
