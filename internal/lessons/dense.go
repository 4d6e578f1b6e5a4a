package lessons

import (
	"context"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/nn"
)

// baselineStack is the 16-16-1 feed-forward classifier every dense
// lesson starts from.
func baselineStack() *nn.Sequential {
	return nn.NewSequential("baseline",
		&nn.Dense{Units: 16, Activation: nn.ReLU},
		&nn.Dense{Units: 16, Activation: nn.ReLU},
		&nn.Dense{Units: 1, Activation: nn.Sigmoid},
	)
}

func init() {
	register(Lesson{
		Name:  "dense-baseline",
		Title: "A first dense network on multi-hot reviews",
		Summary: "Two hidden layers of 16 rectified-linear units and a " +
			"sigmoid output, compiled with RMSprop and binary " +
			"crossentropy, trained 4 epochs at batch size 512 against an " +
			"explicit validation set held out of the training split.",
		Run: func(ctx context.Context, p Params) ([]models.RunRecord, error) {
			train, val, test, err := multiHotSets(ctx, p)
			if err != nil {
				return nil, err
			}

			m := baselineStack()
			m.Compile(nn.NewRMSprop(), nn.BinaryCrossentropy{})

			rec, err := fitRecord(ctx, p, "dense-baseline", "16-16-1", m,
				train, &val, 0, test, p.epochs(4), p.batchSize(512))
			if err != nil {
				return nil, err
			}
			return []models.RunRecord{rec}, nil
		},
	})

	register(Lesson{
		Name:  "validation-curves",
		Title: "Watching a model overfit",
		Summary: "The same 16-16-1 stack trained for 20 epochs. Training " +
			"loss keeps falling while validation loss bottoms out after a " +
			"few epochs and climbs back up: the model has started " +
			"memorizing the training reviews.",
		Run: func(ctx context.Context, p Params) ([]models.RunRecord, error) {
			train, val, test, err := multiHotSets(ctx, p)
			if err != nil {
				return nil, err
			}

			m := baselineStack()
			m.Compile(nn.NewRMSprop(), nn.BinaryCrossentropy{})

			rec, err := fitRecord(ctx, p, "validation-curves", "16-16-1", m,
				train, &val, 0, test, p.epochs(20), p.batchSize(512))
			if err != nil {
				return nil, err
			}
			return []models.RunRecord{rec}, nil
		},
	})
}
