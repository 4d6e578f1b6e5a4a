package lessons

import (
	"context"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/nn"
)

func init() {
	register(Lesson{
		Name:  "conv1d",
		Title: "1-D convolutions for sequence classification",
		Summary: "Embedding(10000, 128) into two Conv1D(32, 7) stages with " +
			"max pooling of 5 between them and global max pooling at the " +
			"end. Filters learn 7-token phrase detectors; pooling keeps " +
			"the strongest response wherever it occurs. The optimizer " +
			"clips gradient norms, which the deeper stack needs early in " +
			"training.",
		Run: func(ctx context.Context, p Params) ([]models.RunRecord, error) {
			maxLen := p.maxLen(500)
			train, test, err := sequenceSets(ctx, p, maxLen)
			if err != nil {
				return nil, err
			}

			m := nn.NewSequential("conv1d",
				&nn.Embedding{InputDim: vocabSize, OutputDim: 128},
				&nn.Conv1D{Filters: 32, KernelSize: 7, Activation: nn.ReLU},
				&nn.MaxPooling1D{PoolSize: 5},
				&nn.Conv1D{Filters: 32, KernelSize: 7, Activation: nn.ReLU},
				&nn.GlobalMaxPooling1D{},
				&nn.Dense{Units: 1, Activation: nn.Sigmoid},
			)
			opt := nn.NewRMSprop()
			opt.ClipNorm = 1.0
			m.Compile(opt, nn.BinaryCrossentropy{})

			rec, err := fitRecord(ctx, p, "conv1d", "conv-32x7", m,
				train, nil, 0.2, test, p.epochs(10), p.batchSize(128))
			if err != nil {
				return nil, err
			}
			return []models.RunRecord{rec}, nil
		},
	})
}
