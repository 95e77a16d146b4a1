// README: VADER-based sentiment classifier with fixed compound-score cutoffs.
package sentiment

import "github.com/jonreiter/govader"

type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Bucketing cutoffs on the VADER compound score. These are a design
// parameter, not incidental: >= +0.05 positive, <= -0.05 negative.
const (
	positiveCutoff = 0.05
	negativeCutoff = -0.05
)

// Classifier wraps a VADER analyzer instance. Construct once at startup and
// inject; the lexicon load is not free.
type Classifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewClassifier() *Classifier {
	return &Classifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Classify maps free text to one of the three sentiment buckets.
// Deterministic for a fixed lexicon.
func (c *Classifier) Classify(text string) Label {
	scores := c.analyzer.PolarityScores(text)
	return bucket(scores.Compound)
}

func bucket(compound float64) Label {
	switch {
	case compound >= positiveCutoff:
		return Positive
	case compound <= negativeCutoff:
		return Negative
	default:
		return Neutral
	}
}
