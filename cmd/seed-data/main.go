// Command seed-data generates a content pack YAML with calibrated test
// items and behavioral scenarios for local development and load tests.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/adapters/content"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
)

const (
	defaultItemsPerDomain     = 40
	defaultScenariosPerType   = 3
	defaultOptionsPerItem     = 4
	defaultOptionsPerScenario = 3
)

func main() {
	var (
		itemsPerDomain   = flag.Int("items", defaultItemsPerDomain, "Items to generate per cognitive domain")
		scenariosPerType = flag.Int("scenarios", defaultScenariosPerType, "Scenarios to generate per scenario type")
		seed             = flag.Int64("seed", 42, "Random seed for reproducible packs")
		output           = flag.String("output", "content_pack.yaml", "Output file path")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	pack := content.Pack{
		Items:     generateItems(rng, *itemsPerDomain),
		Scenarios: generateScenarios(rng, *scenariosPerType),
	}
	if err := pack.Validate(); err != nil {
		os.Stderr.WriteString("generated pack is invalid: " + err.Error() + "\n")
		os.Exit(1)
	}

	raw, err := yaml.Marshal(&pack)
	if err != nil {
		os.Stderr.WriteString("marshal pack: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := os.WriteFile(*output, raw, 0o644); err != nil {
		os.Stderr.WriteString("write pack: " + err.Error() + "\n")
		os.Exit(1)
	}

	fmt.Printf("wrote %s: %d items, %d scenarios\n", *output, len(pack.Items), len(pack.Scenarios))
}

// generateItems spreads difficulty evenly across [-3,3] per domain and
// staggers age windows so every age in [0,72] has eligible items.
func generateItems(rng *rand.Rand, perDomain int) []model.TestItem {
	items := make([]model.TestItem, 0, perDomain*len(model.CognitiveDomains()))
	for _, domain := range model.CognitiveDomains() {
		for i := 0; i < perDomain; i++ {
			difficulty := -3.0 + 6.0*float64(i)/float64(perDomain-1)
			minAge := (i * 48 / perDomain)
			item := model.TestItem{
				ID:             fmt.Sprintf("%s-%03d", domain, i+1),
				Domain:         domain,
				Difficulty:     difficulty,
				Discrimination: 0.8 + rng.Float64()*1.2,
				Guessing:       0.1 + rng.Float64()*0.15,
				MinAgeMonths:   minAge,
				MaxAgeMonths:   minAge + 24,
				Content:        generateContent(rng, string(domain), i+1),
			}
			items = append(items, item)
		}
	}
	return items
}

func generateContent(rng *rand.Rand, domain string, n int) model.ItemContent {
	options := make([]string, defaultOptionsPerItem)
	for i := range options {
		options[i] = fmt.Sprintf("option-%c", 'a'+i)
	}
	correct := options[rng.Intn(len(options))]
	return model.ItemContent{
		Type:          "multiple_choice",
		Prompt:        fmt.Sprintf("Sample %s task %d", domain, n),
		Options:       options,
		CorrectAnswer: []string{correct},
	}
}

func generateScenarios(rng *rand.Rand, perType int) []model.Scenario {
	types := []model.ScenarioType{
		model.ScenarioSharing, model.ScenarioWaiting, model.ScenarioChallenge,
		model.ScenarioCooperation, model.ScenarioNovelty,
	}
	dims := model.EmotionalDimensions()

	scenarios := make([]model.Scenario, 0, perType*len(types))
	for _, st := range types {
		for i := 0; i < perType; i++ {
			options := make([]model.ScenarioOption, defaultOptionsPerScenario)
			for j := range options {
				deltas := make(map[model.EmotionalDimension]float64, 2)
				deltas[dims[rng.Intn(len(dims))]] = -5 + rng.Float64()*15
				deltas[dims[rng.Intn(len(dims))]] = -5 + rng.Float64()*15
				options[j] = model.ScenarioOption{
					ID:              fmt.Sprintf("opt-%d", j+1),
					Label:           fmt.Sprintf("Choice %d", j+1),
					Expected:        j == 0,
					DimensionDeltas: deltas,
				}
			}
			scenarios = append(scenarios, model.Scenario{
				ID:           fmt.Sprintf("%s-%02d", st, i+1),
				Type:         st,
				Title:        fmt.Sprintf("Sample %s scenario %d", st, i+1),
				MinAgeMonths: 24,
				MaxAgeMonths: 72,
				Options:      options,
			})
		}
	}
	return scenarios
}
