package lessons

import (
	"context"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/nn"
)

func init() {
	register(Lesson{
		Name:  "dropout",
		Title: "Dropout between the dense layers",
		Summary: "Dropout(0.5) after each hidden layer zeroes half the " +
			"activations during training and rescales the rest; inference " +
			"runs the full network. Compared against the plain baseline " +
			"the validation curve flattens out instead of turning up.",
		Run: func(ctx context.Context, p Params) ([]models.RunRecord, error) {
			train, val, test, err := multiHotSets(ctx, p)
			if err != nil {
				return nil, err
			}

			plain := baselineStack()
			plain.Compile(nn.NewRMSprop(), nn.BinaryCrossentropy{})
			plainRec, err := fitRecord(ctx, p, "dropout", "plain", plain,
				train, &val, 0, test, p.epochs(20), p.batchSize(512))
			if err != nil {
				return nil, err
			}

			dropped := nn.NewSequential("dropout",
				&nn.Dense{Units: 16, Activation: nn.ReLU},
				&nn.Dropout{Rate: 0.5},
				&nn.Dense{Units: 16, Activation: nn.ReLU},
				&nn.Dropout{Rate: 0.5},
				&nn.Dense{Units: 1, Activation: nn.Sigmoid},
			)
			dropped.Compile(nn.NewRMSprop(), nn.BinaryCrossentropy{})
			droppedRec, err := fitRecord(ctx, p, "dropout", "dropout-0.5", dropped,
				train, &val, 0, test, p.epochs(20), p.batchSize(512))
			if err != nil {
				return nil, err
			}

			return []models.RunRecord{plainRec, droppedRec}, nil
		},
	})
}
