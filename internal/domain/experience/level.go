// Package experience models the requester's fragrance-domain expertise.
package experience

// Level is the requester's expertise tier.
type Level string

// Expertise levels.
const (
	Beginner     Level = "beginner"
	Intermediate Level = "intermediate"
	Advanced     Level = "advanced"
)

// IsValid checks if the level is one of the supported values.
func (l Level) IsValid() bool {
	return l == Beginner || l == Intermediate || l == Advanced
}

// Source records which signal produced the classification, for observability.
type Source string

// Classification signal sources, in decision priority order.
const (
	SourceExplicit Source = "explicit"
	SourceKeyword  Source = "keyword"
	SourceHistory  Source = "history"
	SourceDefault  Source = "default"
)

// Classification is a level plus the signal that produced it.
type Classification struct {
	level      Level
	source     Source
	confidence float64
}

// NewClassification creates a classification result.
func NewClassification(level Level, source Source, confidence float64) Classification {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return Classification{level: level, source: source, confidence: confidence}
}

// Level returns the classified expertise tier.
func (c *Classification) Level() Level { return c.level }

// Source returns the signal that produced the classification.
func (c *Classification) Source() Source { return c.source }

// Confidence returns the classification confidence in [0,1].
func (c *Classification) Confidence() float64 { return c.confidence }
