package motive

// Record holds one region's crime-motive breakdown as published. Crime maps
// the source's motive labels (and "Total") to counts.
type Record struct {
	Name  string             `json:"name"`
	Crime map[string]float64 `json:"crime"`
}

// Dataset is the ordered list of records from one source document.
type Dataset []Record

// Result is the aggregated view of a Dataset: regions with a positive total,
// ranked by descending total, with one count series per category aligned
// index-for-index with Ranking.
type Result struct {
	Categories Categories `json:"categories"`
	Ranking    []string   `json:"ranking"`
	Totals     []float64  `json:"totals"`
	// Series holds one slice per entry of Categories, in the same order.
	Series [][]float64 `json:"series"`
}

// Len returns the number of ranked regions.
func (r Result) Len() int { return len(r.Ranking) }

// SeriesFor returns the counts for the category with the given slug, or nil
// if the result does not carry that category.
func (r Result) SeriesFor(slug string) []float64 {
	for i, c := range r.Categories {
		if c.Slug == slug {
			return r.Series[i]
		}
	}
	return nil
}

// Max returns the largest single category count in the result.
func (r Result) Max() float64 {
	var m float64
	for _, s := range r.Series {
		for _, v := range s {
			if v > m {
				m = v
			}
		}
	}
	return m
}

// MaxTotal returns the largest region total in the result.
func (r Result) MaxTotal() float64 {
	if len(r.Totals) == 0 {
		return 0
	}
	// Totals are sorted descending.
	return r.Totals[0]
}
