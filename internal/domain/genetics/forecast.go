package genetics

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

const (
	DefaultForecastSamples = 200
	MaxForecastSamples     = 5000
)

var ErrTooManySamples = errors.New("forecast: too many samples")

// LitterForecast resume muchas crías simuladas de un mismo cruce.
type LitterForecast struct {
	Samples         int                `json:"samples"`
	MeanRarity      float64            `json:"mean_rarity"`
	StdDevRarity    float64            `json:"stddev_rarity"`
	MedianRarity    float64            `json:"median_rarity"`
	MinRarity       float64            `json:"min_rarity"`
	MaxRarity       float64            `json:"max_rarity"`
	MeanMarketValue float64            `json:"mean_market_value"`
	TierOdds        map[string]float64 `json:"tier_odds"`
}

// Forecast corre Breed samples veces con el rng dado.
func Forecast(p1, p2 GeneticCode, cat *Catalog, rng Rand, samples int) (LitterForecast, error) {
	if samples <= 0 {
		samples = DefaultForecastSamples
	}
	if samples > MaxForecastSamples {
		return LitterForecast{}, fmt.Errorf("%w: %d > %d", ErrTooManySamples, samples, MaxForecastSamples)
	}

	scores := make([]float64, 0, samples)
	values := make([]float64, 0, samples)
	tiers := map[string]int{}

	for range samples {
		out, err := Breed(p1, p2, cat, rng)
		if err != nil {
			return LitterForecast{}, err
		}
		scores = append(scores, out.Stats.RarityScore)
		values = append(values, float64(out.Stats.MarketValue))
		tiers[out.Stats.RarityTier]++
	}

	f := LitterForecast{Samples: samples, TierOdds: map[string]float64{}}
	for _, t := range cat.stats.Tiers {
		f.TierOdds[t.Name] = float64(tiers[t.Name]) / float64(samples)
	}

	var err error
	if f.MeanRarity, err = stats.Mean(scores); err != nil {
		return LitterForecast{}, fmt.Errorf("forecast: %w", err)
	}
	if f.StdDevRarity, err = stats.StandardDeviation(scores); err != nil {
		return LitterForecast{}, fmt.Errorf("forecast: %w", err)
	}
	if f.MedianRarity, err = stats.Median(scores); err != nil {
		return LitterForecast{}, fmt.Errorf("forecast: %w", err)
	}
	if f.MinRarity, err = stats.Min(scores); err != nil {
		return LitterForecast{}, fmt.Errorf("forecast: %w", err)
	}
	if f.MaxRarity, err = stats.Max(scores); err != nil {
		return LitterForecast{}, fmt.Errorf("forecast: %w", err)
	}
	if f.MeanMarketValue, err = stats.Mean(values); err != nil {
		return LitterForecast{}, fmt.Errorf("forecast: %w", err)
	}

	f.MeanRarity = round2(f.MeanRarity)
	f.StdDevRarity = round2(f.StdDevRarity)
	f.MeanMarketValue = round2(f.MeanMarketValue)
	return f, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
