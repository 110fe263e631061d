package genetics

import "math"

// LifeStage la provee el subsistema de envejecimiento (externo); aquí sólo pondera el precio.
// @Enum baby, juvenile, adult, elder
type LifeStage string

const (
	StageBaby     LifeStage = "baby"
	StageJuvenile LifeStage = "juvenile"
	StageAdult    LifeStage = "adult"
	StageElder    LifeStage = "elder"
)

func (s LifeStage) valid() bool {
	switch s {
	case StageBaby, StageJuvenile, StageAdult, StageElder:
		return true
	}
	return false
}

// ParseLifeStage acepta sólo los stages conocidos.
func ParseLifeStage(s string) (LifeStage, bool) {
	st := LifeStage(s)
	return st, st.valid()
}

type Stats struct {
	Speed       int     `json:"speed"`
	Endurance   int     `json:"endurance"`
	RarityScore float64 `json:"rarity_score"`
	RarityTier  string  `json:"rarity_tier"`
	MarketValue int     `json:"market_value"`
}

// DeriveStats es pura: sin I/O ni azar.
func DeriveStats(code GeneticCode, ph Phenotype, cat *Catalog, stage LifeStage) (Stats, error) {
	exprs, err := cat.expressAll(code)
	if err != nil {
		return Stats{}, err
	}

	cfg := cat.stats
	st := Stats{Speed: cfg.BaseSpeed, Endurance: cfg.BaseEndurance}

	score := 0.0
	for _, g := range cat.genes {
		effect := 0
		for _, sym := range exprs[g.ID].Alleles {
			a := cat.alleles[AlleleKey{Gene: g.ID, Symbol: sym}]
			effect += a.Effect
			score += float64(a.Effect) * cat.rarityWeight(a)
		}
		switch g.Performance {
		case PerformanceSpeed:
			st.Speed += effect
		case PerformanceEndurance:
			st.Endurance += effect
		case PerformanceBoth:
			st.Speed += effect
			st.Endurance += effect
		}
	}

	st.RarityScore = round2(score)
	st.RarityTier = tierFor(cfg.Tiers, st.RarityScore)
	st.MarketValue = cat.marketValue(st, ph, stage)
	return st, nil
}

// rarityWeight: (1/n)/frecuencia. Con frecuencia uniforme (o no declarada) vale 1.
func (c *Catalog) rarityWeight(a Allele) float64 {
	if !c.stats.RarityWeighting || a.Frequency <= 0 {
		return 1
	}
	n := len(c.byGene[a.Gene])
	return (1 / float64(n)) / a.Frequency
}

func tierFor(tiers []RarityTier, score float64) string {
	name := tiers[0].Name
	for _, t := range tiers[1:] {
		if score < t.MinScore {
			break
		}
		name = t.Name
	}
	return name
}

func (c *Catalog) marketValue(st Stats, ph Phenotype, stage LifeStage) int {
	m := c.stats.Market

	v := m.BasePrice + st.RarityScore*m.PricePerPoint
	if mult, ok := m.TierMultipliers[st.RarityTier]; ok {
		v *= mult
	}
	if mult, ok := m.StageMultipliers[stage]; ok {
		v *= mult
	}
	// orden canónico para que la suma de floats sea estable
	for _, g := range c.genes {
		v += m.TraitPremiums[ph[g.Trait]]
	}

	if v < 0 {
		return 0
	}
	return int(math.Round(v))
}
