package part

// CategoryWeight is one slice of a bike's weight breakdown.
type CategoryWeight struct {
	CategoryID   string
	CategoryName string
	Grams        int
	// Share is this category's fraction of the total weight, 0..1.
	// Zero-weight parts contribute a zero share.
	Share float64
}

// WeightSummary is the derived weight view of one bike.
type WeightSummary struct {
	TotalGrams int
	Categories []CategoryWeight
}

const uncategorised = "Uncategorised"

// SummariseWeight totals part weights and computes the per-category
// distribution. Categories appear in first-seen order; parts without a
// category are grouped under a generic label.
func SummariseWeight(parts []Part) WeightSummary {
	s := WeightSummary{}

	idx := map[string]int{}
	for _, p := range parts {
		s.TotalGrams += p.WeightGrams

		key := uncategorised
		name := uncategorised
		if p.CategoryID != nil {
			key = p.CategoryID.String()
			if p.CategoryName != nil {
				name = *p.CategoryName
			}
		}

		i, ok := idx[key]
		if !ok {
			i = len(s.Categories)
			idx[key] = i
			cw := CategoryWeight{CategoryName: name}
			if p.CategoryID != nil {
				cw.CategoryID = p.CategoryID.String()
			}
			s.Categories = append(s.Categories, cw)
		}
		s.Categories[i].Grams += p.WeightGrams
	}

	if s.TotalGrams > 0 {
		for i := range s.Categories {
			s.Categories[i].Share = float64(s.Categories[i].Grams) / float64(s.TotalGrams)
		}
	}

	return s
}
