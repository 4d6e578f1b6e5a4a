package lessons

import (
	"context"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/nn"
)

func init() {
	register(Lesson{
		Name:  "simple-rnn",
		Title: "A simple recurrent unit over the token sequence",
		Summary: "Embedding(10000, 32) feeding a 32-unit simple recurrent " +
			"layer whose final hidden state drives the sigmoid output. The " +
			"recurrence reads the review token by token, so word order " +
			"contributes to the prediction.",
		Run: func(ctx context.Context, p Params) ([]models.RunRecord, error) {
			maxLen := p.maxLen(500)
			train, test, err := sequenceSets(ctx, p, maxLen)
			if err != nil {
				return nil, err
			}

			m := nn.NewSequential("simple-rnn",
				&nn.Embedding{InputDim: vocabSize, OutputDim: 32},
				&nn.SimpleRNN{Units: 32},
				&nn.Dense{Units: 1, Activation: nn.Sigmoid},
			)
			m.Compile(nn.NewRMSprop(), nn.BinaryCrossentropy{})

			rec, err := fitRecord(ctx, p, "simple-rnn", "rnn-32", m,
				train, nil, 0.2, test, p.epochs(10), p.batchSize(128))
			if err != nil {
				return nil, err
			}
			return []models.RunRecord{rec}, nil
		},
	})

	register(Lesson{
		Name:  "lstm",
		Title: "Gated memory: the LSTM variant",
		Summary: "The same pipeline with the simple recurrence replaced " +
			"by a 32-unit LSTM. The gates let gradients flow across long " +
			"reviews, where the simple unit forgets the opening " +
			"sentences by the time it reaches the end.",
		Run: func(ctx context.Context, p Params) ([]models.RunRecord, error) {
			maxLen := p.maxLen(500)
			train, test, err := sequenceSets(ctx, p, maxLen)
			if err != nil {
				return nil, err
			}

			m := nn.NewSequential("lstm",
				&nn.Embedding{InputDim: vocabSize, OutputDim: 32},
				&nn.LSTM{Units: 32},
				&nn.Dense{Units: 1, Activation: nn.Sigmoid},
			)
			m.Compile(nn.NewRMSprop(), nn.BinaryCrossentropy{})

			rec, err := fitRecord(ctx, p, "lstm", "lstm-32", m,
				train, nil, 0.2, test, p.epochs(10), p.batchSize(128))
			if err != nil {
				return nil, err
			}
			return []models.RunRecord{rec}, nil
		},
	})
}
