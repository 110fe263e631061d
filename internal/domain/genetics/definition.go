package genetics

import (
	"bytes"
	_ "embed"
	"fmt"
	"maps"
	"math"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Definition es la forma serializada (YAML) del catálogo.
// Los alelos van en una lista aparte para poder detectar referencias a genes desconocidos.
type Definition struct {
	Version   string             `yaml:"version"`
	TiePolicy TiePolicy          `yaml:"tie_policy"`
	Genes     []GeneDefinition   `yaml:"genes"`
	Alleles   []AlleleDefinition `yaml:"alleles"`
	Stats     StatsConfig        `yaml:"stats"`
}

type GeneDefinition struct {
	ID          GeneID            `yaml:"id"`
	Trait       Trait             `yaml:"trait"`
	Description string            `yaml:"description"`
	Performance PerformanceRole   `yaml:"performance"`
	Blends      map[string]string `yaml:"blends"`
}

type AlleleDefinition struct {
	Gene      GeneID  `yaml:"gene"`
	Symbol    string  `yaml:"symbol"`
	Dominance int     `yaml:"dominance"`
	Effect    int     `yaml:"effect"`
	Display   string  `yaml:"display"`
	Frequency float64 `yaml:"frequency"`
}

// StatsConfig agrupa las tablas de juego. Campos ausentes: cero (o multiplicador 1).
type StatsConfig struct {
	BaseSpeed       int          `yaml:"base_speed" json:"base_speed"`
	BaseEndurance   int          `yaml:"base_endurance" json:"base_endurance"`
	RarityWeighting bool         `yaml:"rarity_weighting" json:"rarity_weighting"`
	Tiers           []RarityTier `yaml:"tiers" json:"tiers"`
	Market          MarketConfig `yaml:"market" json:"market"`
}

// RarityTier: el primer tier es el piso; score >= MinScore sube al tier.
type RarityTier struct {
	Name     string  `yaml:"name" json:"name"`
	MinScore float64 `yaml:"min_score" json:"min_score"`
}

type MarketConfig struct {
	BasePrice        float64               `yaml:"base_price" json:"base_price"`
	PricePerPoint    float64               `yaml:"price_per_point" json:"price_per_point"`
	TierMultipliers  map[string]float64    `yaml:"tier_multipliers" json:"tier_multipliers,omitempty"`
	StageMultipliers map[LifeStage]float64 `yaml:"stage_multipliers" json:"stage_multipliers,omitempty"`
	TraitPremiums    map[string]float64    `yaml:"trait_premiums" json:"trait_premiums,omitempty"` // display value -> premium
}

// DefaultRarityTiers se usa cuando la definición no declara tiers.
var DefaultRarityTiers = []RarityTier{
	{Name: "Common", MinScore: 0},
	{Name: "Uncommon", MinScore: 10},
	{Name: "Rare", MinScore: 20},
}

func (s StatsConfig) clone() StatsConfig {
	out := s
	out.Tiers = slices.Clone(s.Tiers)
	out.Market.TierMultipliers = maps.Clone(s.Market.TierMultipliers)
	out.Market.StageMultipliers = maps.Clone(s.Market.StageMultipliers)
	out.Market.TraitPremiums = maps.Clone(s.Market.TraitPremiums)
	return out
}

// ParseDefinition decodifica YAML estricto (campos desconocidos = error).
func ParseDefinition(b []byte) (Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return Definition{}, fmt.Errorf("%w: parse yaml: %v", ErrCatalog, err)
	}
	return def, nil
}

func LoadCatalogFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrCatalog, path, err)
	}
	def, err := ParseDefinition(b)
	if err != nil {
		return nil, err
	}
	return LoadCatalog(def)
}

// DefaultCatalog carga el catálogo embebido en el binario.
func DefaultCatalog() (*Catalog, error) {
	def, err := ParseDefinition(defaultCatalogYAML)
	if err != nil {
		return nil, err
	}
	return LoadCatalog(def)
}

// LoadCatalog valida la definición y construye el catálogo inmutable.
func LoadCatalog(def Definition) (*Catalog, error) {
	version := strings.TrimSpace(def.Version)
	if strings.ContainsAny(version, "|;: \t\n") {
		return nil, fmt.Errorf("%w: version %q contains reserved characters", ErrCatalog, version)
	}

	ties := def.TiePolicy
	if ties == "" {
		ties = TieCoDominant
	}
	if ties != TieCoDominant && ties != TieFirstSymbol {
		return nil, fmt.Errorf("%w: unknown tie_policy %q", ErrCatalog, ties)
	}

	c := &Catalog{
		version:   version,
		ties:      ties,
		genes:     make([]Gene, 0, len(def.Genes)),
		geneIndex: make(map[GeneID]int, len(def.Genes)),
		alleles:   make(map[AlleleKey]Allele),
		byGene:    make(map[GeneID][]string, len(def.Genes)),
	}

	if len(def.Genes) == 0 {
		return nil, fmt.Errorf("%w: no genes defined", ErrCatalog)
	}

	traits := map[Trait]GeneID{}
	for _, gd := range def.Genes {
		id := GeneID(strings.TrimSpace(string(gd.ID)))
		if id == "" {
			return nil, fmt.Errorf("%w: gene with empty id", ErrCatalog)
		}
		if strings.ContainsAny(string(id), "|;: \t\n") {
			return nil, fmt.Errorf("%w: gene id %q contains reserved characters", ErrCatalog, id)
		}
		if _, dup := c.geneIndex[id]; dup {
			return nil, fmt.Errorf("%w: duplicate gene %q", ErrCatalog, id)
		}
		trait := gd.Trait
		if trait == "" {
			trait = Trait(id)
		}
		if other, dup := traits[trait]; dup {
			return nil, fmt.Errorf("%w: trait %q used by genes %q and %q", ErrCatalog, trait, other, id)
		}
		if !gd.Performance.valid() {
			return nil, fmt.Errorf("%w: gene %q: unknown performance role %q", ErrCatalog, id, gd.Performance)
		}
		traits[trait] = id
		c.geneIndex[id] = len(c.genes)
		c.genes = append(c.genes, Gene{
			ID:          id,
			Trait:       trait,
			Description: strings.TrimSpace(gd.Description),
			Performance: gd.Performance,
		})
	}

	for _, ad := range def.Alleles {
		gene := GeneID(strings.TrimSpace(string(ad.Gene)))
		if _, ok := c.geneIndex[gene]; !ok {
			return nil, fmt.Errorf("%w: allele %q references unknown gene %q", ErrCatalog, ad.Symbol, gene)
		}
		if utf8.RuneCountInString(ad.Symbol) != 1 {
			return nil, fmt.Errorf("%w: gene %q: allele symbol %q must be a single character", ErrCatalog, gene, ad.Symbol)
		}
		if strings.ContainsAny(ad.Symbol, "|;: \t\n") {
			return nil, fmt.Errorf("%w: gene %q: allele symbol %q is reserved", ErrCatalog, gene, ad.Symbol)
		}
		display := strings.TrimSpace(ad.Display)
		if display == "" {
			display = ad.Symbol
		}
		a := Allele{
			Gene:      gene,
			Symbol:    ad.Symbol,
			Dominance: ad.Dominance,
			Effect:    ad.Effect,
			Display:   display,
			Frequency: ad.Frequency,
		}
		key := a.Key()
		if _, dup := c.alleles[key]; dup {
			return nil, fmt.Errorf("%w: duplicate allele %s", ErrCatalog, key)
		}
		if ad.Dominance <= 0 {
			return nil, fmt.Errorf("%w: allele %s: dominance must be positive, got %d", ErrCatalog, key, ad.Dominance)
		}
		if ad.Frequency < 0 || ad.Frequency > 1 || math.IsNaN(ad.Frequency) {
			return nil, fmt.Errorf("%w: allele %s: frequency must be in (0,1]", ErrCatalog, key)
		}
		c.alleles[key] = a
		c.byGene[gene] = append(c.byGene[gene], ad.Symbol)
	}

	for i, gd := range def.Genes {
		g := c.genes[i]
		if len(c.byGene[g.ID]) == 0 {
			return nil, fmt.Errorf("%w: gene %q has no alleles", ErrCatalog, g.ID)
		}
		if err := c.checkFrequencies(g.ID); err != nil {
			return nil, err
		}
		blends, err := c.normalizeBlends(g.ID, gd.Blends)
		if err != nil {
			return nil, err
		}
		c.genes[i].blends = blends
	}

	stats, err := c.checkStats(def.Stats)
	if err != nil {
		return nil, err
	}
	c.stats = stats

	return c, nil
}

// Si un gen declara frecuencias, todos sus alelos deben hacerlo y sumar 1.
func (c *Catalog) checkFrequencies(gene GeneID) error {
	declared, sum := 0, 0.0
	alleles := c.Alleles(gene)
	for _, a := range alleles {
		if a.Frequency > 0 {
			declared++
			sum += a.Frequency
		}
	}
	if declared == 0 {
		return nil
	}
	if declared != len(alleles) {
		return fmt.Errorf("%w: gene %q: frequency declared for %d of %d alleles", ErrCatalog, gene, declared, len(alleles))
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("%w: gene %q: allele frequencies sum to %.4f, want 1", ErrCatalog, gene, sum)
	}
	return nil
}

func (c *Catalog) normalizeBlends(gene GeneID, blends map[string]string) (map[string]string, error) {
	if len(blends) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(blends))
	for key, name := range blends {
		runes := []rune(key)
		if len(runes) != 2 {
			return nil, fmt.Errorf("%w: gene %q: blend key %q must be two allele symbols", ErrCatalog, gene, key)
		}
		a, okA := c.Allele(gene, string(runes[0]))
		b, okB := c.Allele(gene, string(runes[1]))
		if !okA || !okB {
			return nil, fmt.Errorf("%w: gene %q: blend key %q references unknown allele", ErrCatalog, gene, key)
		}
		if a.Dominance != b.Dominance || a.Symbol == b.Symbol {
			return nil, fmt.Errorf("%w: gene %q: blend key %q is not a co-dominant pair", ErrCatalog, gene, key)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: gene %q: blend %q has empty name", ErrCatalog, gene, key)
		}
		out[c.normalize(gene, a.Symbol, b.Symbol).String()] = name
	}
	return out, nil
}

func (c *Catalog) checkStats(s StatsConfig) (StatsConfig, error) {
	s = s.clone()
	if len(s.Tiers) == 0 {
		s.Tiers = slices.Clone(DefaultRarityTiers)
	}

	names := map[string]struct{}{}
	for i, t := range s.Tiers {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return StatsConfig{}, fmt.Errorf("%w: rarity tier %d has empty name", ErrCatalog, i)
		}
		if _, dup := names[name]; dup {
			return StatsConfig{}, fmt.Errorf("%w: duplicate rarity tier %q", ErrCatalog, name)
		}
		if i > 0 && t.MinScore <= 0 {
			return StatsConfig{}, fmt.Errorf("%w: rarity tier %q: threshold must be positive", ErrCatalog, name)
		}
		if i > 0 && t.MinScore <= s.Tiers[i-1].MinScore {
			return StatsConfig{}, fmt.Errorf("%w: rarity tier %q: thresholds must be strictly ascending", ErrCatalog, name)
		}
		names[name] = struct{}{}
		s.Tiers[i].Name = name
	}

	for tier, m := range s.Market.TierMultipliers {
		if _, ok := names[tier]; !ok {
			return StatsConfig{}, fmt.Errorf("%w: market multiplier for unknown tier %q", ErrCatalog, tier)
		}
		if m < 0 {
			return StatsConfig{}, fmt.Errorf("%w: negative market multiplier for tier %q", ErrCatalog, tier)
		}
	}
	for stage, m := range s.Market.StageMultipliers {
		if !stage.valid() {
			return StatsConfig{}, fmt.Errorf("%w: market multiplier for unknown stage %q", ErrCatalog, stage)
		}
		if m < 0 {
			return StatsConfig{}, fmt.Errorf("%w: negative market multiplier for stage %q", ErrCatalog, stage)
		}
	}
	return s, nil
}
