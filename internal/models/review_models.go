package models

// Review is a movie review encoded as word-rank indices into the
// frequency-ordered vocabulary. Index 1 marks the start of a review,
// index 2 an out-of-vocabulary word; real word ranks begin at 4.
type Review = []int32

// Label is binary: 0 negative, 1 positive, co-indexed 1:1 with reviews.
type Label = int8

const (
	LabelNegative Label = 0
	LabelPositive Label = 1
)
