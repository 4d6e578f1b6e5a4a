package lessons

import (
	"context"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/nn"
)

func init() {
	register(Lesson{
		Name:  "alternative-loss",
		Title: "Swapping the loss and hidden activations",
		Summary: "The baseline rewired with mean squared error and tanh " +
			"hidden activations. Binary crossentropy remains the better " +
			"match for a probability output, but the substitution shows " +
			"that loss and activation are configuration, not structure.",
		Run: func(ctx context.Context, p Params) ([]models.RunRecord, error) {
			train, val, test, err := multiHotSets(ctx, p)
			if err != nil {
				return nil, err
			}

			m := nn.NewSequential("mse-tanh",
				&nn.Dense{Units: 16, Activation: nn.Tanh},
				&nn.Dense{Units: 16, Activation: nn.Tanh},
				&nn.Dense{Units: 1, Activation: nn.Sigmoid},
			)
			m.Compile(nn.NewRMSprop(), nn.MeanSquaredError{})

			rec, err := fitRecord(ctx, p, "alternative-loss", "mse-tanh", m,
				train, &val, 0, test, p.epochs(4), p.batchSize(512))
			if err != nil {
				return nil, err
			}
			return []models.RunRecord{rec}, nil
		},
	})
}
