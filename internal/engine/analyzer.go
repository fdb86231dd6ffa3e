package engine

import (
	"sort"

	"github.com/piwi3910/BarNest/internal/model"
)

// Summarize derives per-tag and overall statistics from a finished plan.
// It is a pure function: running it twice on the same plan yields identical
// output, and an empty plan yields all zeros.
//
// Bars can hold cuts from several tags, so shared quantities (kerf loss,
// waste, stock consumed) are attributed to each tag in proportion to its
// product length on that bar. Requirements are only consulted for cost per
// metre (first non-zero value per tag, as entered); nil is accepted.
func Summarize(plan model.NestingPlan, reqs []model.CutRequirement) (perTag []model.SummaryStat, overall model.SummaryStat) {
	costByTag := make(map[string]float64)
	for _, r := range reqs {
		if r.CostPerMeter > 0 && costByTag[r.Tag] == 0 {
			costByTag[r.Tag] = r.CostPerMeter
		}
	}

	byTag := make(map[string]*model.SummaryStat)
	stat := func(tag string) *model.SummaryStat {
		s, ok := byTag[tag]
		if !ok {
			s = &model.SummaryStat{Tag: tag, CostPerMeter: costByTag[tag]}
			byTag[tag] = s
		}
		return s
	}

	for _, bar := range plan.Bars {
		product := bar.ProductLength()
		if product <= 0 {
			continue
		}

		// Product length per tag on this bar, for proration.
		tagProduct := make(map[string]float64)
		for _, p := range bar.Placements {
			tagProduct[p.Item.Tag] += p.Item.Length
			s := stat(p.Item.Tag)
			s.CutsPlaced++
			s.ProductLength += p.Item.Length
		}
		for tag, tp := range tagProduct {
			share := tp / product
			s := stat(tag)
			s.BarsUsed++
			s.KerfLoss += bar.KerfLoss() * share
			s.Waste += bar.Leftover * share
			s.MetersOrdered += bar.Length * share / 1000.0
		}

		overall.BarsUsed++
		overall.CutsPlaced += len(bar.Placements)
		overall.ProductLength += product
		overall.KerfLoss += bar.KerfLoss()
		overall.Waste += bar.Leftover
		overall.MetersOrdered += bar.Length / 1000.0
	}

	for _, u := range plan.Unmet {
		s := stat(u.Item.Tag)
		s.UnmetCount++
		s.UnmetLength += u.Item.Length
		overall.UnmetCount++
		overall.UnmetLength += u.Item.Length
	}

	finalize := func(s *model.SummaryStat) {
		consumed := s.ProductLength + s.KerfLoss + s.Waste
		if consumed > 0 {
			s.Utilization = (s.ProductLength / consumed) * 100.0
		}
		s.TotalCost = s.MetersOrdered * s.CostPerMeter
	}

	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		finalize(byTag[tag])
		perTag = append(perTag, *byTag[tag])
	}

	// The overall cost is the sum of tag costs; tags can carry different
	// cost rates so meters x rate is meaningless at this level.
	finalize(&overall)
	overall.TotalCost = 0
	for _, s := range perTag {
		overall.TotalCost += s.TotalCost
	}
	return perTag, overall
}
