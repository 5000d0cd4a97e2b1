package models

import "time"

// Doubt is a single question thread posted by a student.
type Doubt struct {
	ID         int64     `json:"id"`
	Subject    string    `json:"subject"`
	Question   string    `json:"question"`
	Answers    []string  `json:"answers"`
	IsResolved bool      `json:"isResolved"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Clone returns a copy of the doubt that shares no memory with the receiver.
func (d Doubt) Clone() Doubt {
	answers := make([]string, len(d.Answers))
	copy(answers, d.Answers)
	d.Answers = answers
	return d
}

// AnswerCount reports how many answers have been attached to the doubt.
func (d Doubt) AnswerCount() int {
	return len(d.Answers)
}

// SampleCreatedAt is the fixed creation time of the built-in doubts, so a
// profile that never saved reports the same samples on every load.
var SampleCreatedAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// SampleDoubts returns the two built-in doubts shown to a fresh profile.
func SampleDoubts() []Doubt {
	return []Doubt{
		{
			ID:       1,
			Subject:  "Sample: CSS",
			Question: "How do I center a div both vertically and horizontally?",
			Answers: []string{
				"You can use Flexbox! Set the parent container to display: flex;, justify-content: center;, and align-items: center;.",
			},
			IsResolved: false,
			CreatedAt:  SampleCreatedAt,
		},
		{
			ID:       2,
			Subject:  "Sample: Math",
			Question: "What is the Pythagorean theorem?",
			Answers: []string{
				"In a right-angled triangle, the square of the hypotenuse (the side opposite the right angle) is equal to the sum of the squares of the other two sides: a² + b² = c².",
			},
			IsResolved: true,
			CreatedAt:  SampleCreatedAt,
		},
	}
}
