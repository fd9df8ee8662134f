package sources

// Source is a single upstream feed with an optional relevance weight.
type Source struct {
	Name   string  `yaml:"name"`
	URL    string  `yaml:"url"`
	Weight float64 `yaml:"weight"`
}

// Groups holds the configured source lists, one per endpoint.
type Groups struct {
	News     []Source `yaml:"news"`
	Traffic  []Source `yaml:"traffic"`
	Industry []Source `yaml:"industry"`
}

// Weights returns a source-name to weight lookup for ranking.
func Weights(srcs []Source) map[string]float64 {
	weights := make(map[string]float64, len(srcs))
	for _, s := range srcs {
		weights[s.Name] = s.Weight
	}
	return weights
}
