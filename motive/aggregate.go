package motive

import (
	"fmt"
	"math"
	"sort"
)

// Aggregate ranks the regions of ds with a positive total by descending total
// (ties keep dataset order) and builds one count series per category aligned
// with that ranking.
//
// Every record must carry "Total" and every key in cats, with non-negative
// numeric values, and region names must be unique. Records with a zero total
// are validated but left out of the result. An empty ranking is not an error.
func Aggregate(ds Dataset, cats Categories) (Result, error) {
	if err := cats.Validate(); err != nil {
		return Result{}, err
	}

	type row struct {
		name   string
		total  float64
		counts []float64
	}

	wanted := cats.keySet()
	seen := make(map[string]int, len(ds))
	var rows []row
	for i, rec := range ds {
		if rec.Name == "" {
			return Result{}, &MissingFieldError{Index: i, Field: "name"}
		}
		if rec.Crime == nil {
			return Result{}, &MissingFieldError{Index: i, Region: rec.Name, Field: "crime"}
		}
		if prev, dup := seen[rec.Name]; dup {
			return Result{}, &InvalidValueError{Index: i, Region: rec.Name, Field: "name", Value: rec.Name,
				Reason: fmt.Sprintf("region already listed at record %d", prev)}
		}
		seen[rec.Name] = i

		lookup, err := normalizedCounts(i, rec, wanted)
		if err != nil {
			return Result{}, err
		}

		total, err := lookupCount(i, rec.Name, lookup, TotalKey)
		if err != nil {
			return Result{}, err
		}
		counts := make([]float64, len(cats))
		for j, c := range cats {
			v, err := lookupCount(i, rec.Name, lookup, c.Key)
			if err != nil {
				return Result{}, err
			}
			counts[j] = v
		}

		if total > 0 {
			rows = append(rows, row{name: rec.Name, total: total, counts: counts})
		}
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].total > rows[b].total
	})

	res := Result{
		Categories: append(Categories(nil), cats...),
		Ranking:    make([]string, len(rows)),
		Totals:     make([]float64, len(rows)),
		Series:     make([][]float64, len(cats)),
	}
	for j := range cats {
		res.Series[j] = make([]float64, len(rows))
	}
	for i, r := range rows {
		res.Ranking[i] = r.name
		res.Totals[i] = r.total
		for j, v := range r.counts {
			res.Series[j][i] = v
		}
	}
	return res, nil
}

type keyedCount struct {
	key   string
	value float64
}

// normalizedCounts indexes the wanted labels of a record's crime mapping by
// normalized key and rejects mappings where two labels collapse onto one of
// them. Other labels are ignored.
func normalizedCounts(index int, rec Record, wanted map[string]bool) (map[string]keyedCount, error) {
	out := make(map[string]keyedCount, len(wanted))
	for k, v := range rec.Crime {
		nk := normalizeKey(k)
		if !wanted[nk] {
			continue
		}
		if prev, ok := out[nk]; ok {
			a, b := prev.key, k
			if b < a {
				a, b = b, a
			}
			return nil, &InvalidValueError{Index: index, Region: rec.Name, Field: b, Value: a,
				Reason: "label is ambiguous with another label"}
		}
		out[nk] = keyedCount{key: k, value: v}
	}
	return out, nil
}

func lookupCount(index int, region string, counts map[string]keyedCount, key string) (float64, error) {
	kc, ok := counts[normalizeKey(key)]
	if !ok {
		return 0, &MissingFieldError{Index: index, Region: region, Field: key}
	}
	if math.IsNaN(kc.value) || math.IsInf(kc.value, 0) {
		return 0, &InvalidValueError{Index: index, Region: region, Field: kc.key, Value: kc.value, Reason: "not a finite number"}
	}
	if kc.value < 0 {
		return 0, &InvalidValueError{Index: index, Region: region, Field: kc.key, Value: kc.value, Reason: "count is negative"}
	}
	return kc.value, nil
}

// TotalMismatch describes a record whose Total differs from the sum of its
// category counts.
type TotalMismatch struct {
	Region string
	Total  float64
	Sum    float64
}

// CheckTotals compares each record's Total with the sum of the given category
// counts. Totals only add up over every built-in motive, so a set that does
// not cover CyberCrimeMotives yields nil. Records that fail validation are
// skipped; Aggregate reports those.
func CheckTotals(ds Dataset, cats Categories) []TotalMismatch {
	if !cats.Covers(CyberCrimeMotives()) {
		return nil
	}
	wanted := cats.keySet()
	var out []TotalMismatch
	for i, rec := range ds {
		lookup, err := normalizedCounts(i, rec, wanted)
		if err != nil {
			continue
		}
		total, err := lookupCount(i, rec.Name, lookup, TotalKey)
		if err != nil {
			continue
		}
		var sum float64
		ok := true
		for _, c := range cats {
			v, err := lookupCount(i, rec.Name, lookup, c.Key)
			if err != nil {
				ok = false
				break
			}
			sum += v
		}
		if ok && sum != total {
			out = append(out, TotalMismatch{Region: rec.Name, Total: total, Sum: sum})
		}
	}
	return out
}
