package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
)

// Pack is the on-disk YAML content bundle. Any section may be empty;
// loaded sections override or extend the embedded defaults.
type Pack struct {
	Items              []model.TestItem   `yaml:"items,omitempty"`
	Scenarios          []model.Scenario   `yaml:"scenarios,omitempty"`
	Archetypes         []model.Archetype  `yaml:"archetypes,omitempty"`
	OpportunityIndices map[string]float64 `yaml:"opportunity_indices,omitempty"`
}

// LoadPack reads and validates a YAML content pack.
func LoadPack(path string) (*Pack, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content pack: %w", err)
	}
	var p Pack
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks item calibration ranges, age windows and scenario
// shapes before the pack is served.
func (p *Pack) Validate() error {
	seenItems := make(map[string]bool, len(p.Items))
	for _, it := range p.Items {
		switch {
		case it.ID == "":
			return fmt.Errorf("%w: item with empty id", ErrInvalidPack)
		case seenItems[it.ID]:
			return fmt.Errorf("%w: duplicate item %s", ErrInvalidPack, it.ID)
		case !model.ValidCognitiveDomain(it.Domain):
			return fmt.Errorf("%w: item %s has unknown domain %q", ErrInvalidPack, it.ID, it.Domain)
		case it.Difficulty < -3 || it.Difficulty > 3:
			return fmt.Errorf("%w: item %s difficulty %.2f outside [-3,3]", ErrInvalidPack, it.ID, it.Difficulty)
		case it.Discrimination < 0.5 || it.Discrimination > 2.5:
			return fmt.Errorf("%w: item %s discrimination %.2f outside [0.5,2.5]", ErrInvalidPack, it.ID, it.Discrimination)
		case it.Guessing < 0 || it.Guessing > 0.5:
			return fmt.Errorf("%w: item %s guessing %.2f outside [0,0.5]", ErrInvalidPack, it.ID, it.Guessing)
		case it.MinAgeMonths > it.MaxAgeMonths:
			return fmt.Errorf("%w: item %s has inverted age window", ErrInvalidPack, it.ID)
		case len(it.Content.CorrectAnswer) == 0:
			return fmt.Errorf("%w: item %s has no correct answer", ErrInvalidPack, it.ID)
		}
		seenItems[it.ID] = true
	}

	seenScenarios := make(map[string]bool, len(p.Scenarios))
	for _, sc := range p.Scenarios {
		switch {
		case sc.ID == "":
			return fmt.Errorf("%w: scenario with empty id", ErrInvalidPack)
		case seenScenarios[sc.ID]:
			return fmt.Errorf("%w: duplicate scenario %s", ErrInvalidPack, sc.ID)
		case len(sc.Options) == 0:
			return fmt.Errorf("%w: scenario %s has no options", ErrInvalidPack, sc.ID)
		}
		seenScenarios[sc.ID] = true
	}

	for zip, v := range p.OpportunityIndices {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: opportunity index %.2f for zip %s outside [0,1]", ErrInvalidPack, v, zip)
		}
	}
	return nil
}

// StoreOptions converts the pack into MemoryStore options.
func (p *Pack) StoreOptions() []StoreOption {
	var opts []StoreOption
	if len(p.Items) > 0 {
		opts = append(opts, WithItems(p.Items...))
	}
	if len(p.Scenarios) > 0 {
		opts = append(opts, WithScenarios(p.Scenarios...))
	}
	if len(p.Archetypes) > 0 {
		opts = append(opts, WithArchetypes(p.Archetypes))
	}
	if len(p.OpportunityIndices) > 0 {
		opts = append(opts, WithOpportunityIndices(p.OpportunityIndices))
	}
	return opts
}
