package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"ai-voice-assistant-be/internal/entity"
	"ai-voice-assistant-be/internal/mapper"
	"ai-voice-assistant-be/internal/model"
	"ai-voice-assistant-be/pkg/retrieval"

	"github.com/fatih/color"
)

// Offline retrieval REPL: runs both retrieval policies against a local
// category fixture, no server and no model key needed. Useful for tuning
// trigger and keyword tables.
//
// Usage: simulate [fixture.json]

var defaultFixture = []model.Category{
	{
		Id:          1,
		Slug:        "web-development",
		Name:        "Web Development",
		Description: "ဝက်ဘ်ဆိုက် ရေးဆွဲခြင်း ဝန်ဆောင်မှု",
		Services: []model.Service{
			{Title: "Website Design"},
			{Title: "Landing Page"},
		},
	},
	{
		Id:          2,
		Slug:        "software-development",
		Name:        "Software Development",
		Description: "စီးပွားရေးလုပ်ငန်းသုံး ဆော့ဖ်ဝဲ ရေးဆွဲခြင်း",
		Services: []model.Service{
			{Title: "ERP System"},
			{Title: "POS System"},
		},
	},
	{
		Id:          3,
		Slug:        "mobile-development",
		Name:        "Mobile Development",
		Description: "Android နှင့် iOS အက်ပ် ရေးဆွဲခြင်း",
		Services: []model.Service{
			{Title: "Android App"},
			{Title: "iOS App"},
		},
	},
}

func main() {
	color.Cyan("🎙  Retrieval Simulation (offline)\n")

	categories, err := loadCategories()
	if err != nil {
		color.Red("Failed to load fixture: %v", err)
		os.Exit(1)
	}
	color.Green("Loaded %d categories", len(categories))
	fmt.Println("Type a question (empty line to quit):")

	engine := retrieval.NewEngine()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			break
		}

		start := time.Now()
		direct := engine.Retrieve(question, categories)
		grounding := engine.RetrieveForContext(question, categories)
		elapsed := time.Since(start)

		color.Yellow("[direct] kind=%s (%v)", direct.Kind, elapsed)
		if direct.Kind == retrieval.KindDirectAnswer {
			fmt.Println(direct.Answer)
		}

		color.Yellow("[context] kind=%s matches=%d", grounding.Kind, len(grounding.Matches))
		for _, m := range grounding.Matches {
			fmt.Printf("  - %s (score %.2f)\n", m.Category.Name, m.Score)
		}
		if grounding.Kind == retrieval.KindMatches {
			color.Cyan("--- context block ---")
			fmt.Println(retrieval.BuildContext(grounding.Matches))
		}
	}
}

func loadCategories() ([]entity.Category, error) {
	raw := defaultFixture
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			return nil, err
		}
		raw = nil
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}

	m := mapper.NewCategoryMapper()
	return m.ToEntities(raw), nil
}
