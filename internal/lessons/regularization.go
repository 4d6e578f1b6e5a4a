package lessons

import (
	"context"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/nn"
)

func init() {
	register(Lesson{
		Name:  "weight-regularization",
		Title: "L1 and L2 weight penalties against overfitting",
		Summary: "The baseline stack with an L2(0.001) penalty on both " +
			"hidden kernels, plus an L1(0.0001) variant for contrast. The " +
			"penalty adds the weight magnitude to the training loss, so " +
			"regularized training loss sits above the plain model's while " +
			"validation loss degrades more slowly.",
		Run: func(ctx context.Context, p Params) ([]models.RunRecord, error) {
			train, val, test, err := multiHotSets(ctx, p)
			if err != nil {
				return nil, err
			}

			variants := []struct {
				name string
				reg  nn.Regularizer
			}{
				{"plain", nn.Regularizer{}},
				{"l2-0.001", nn.L2(0.001)},
				{"l1-0.0001", nn.L1(0.0001)},
			}

			runs := make([]models.RunRecord, 0, len(variants))
			for _, v := range variants {
				m := nn.NewSequential("regularized-"+v.name,
					&nn.Dense{Units: 16, Activation: nn.ReLU, KernelReg: v.reg},
					&nn.Dense{Units: 16, Activation: nn.ReLU, KernelReg: v.reg},
					&nn.Dense{Units: 1, Activation: nn.Sigmoid},
				)
				m.Compile(nn.NewRMSprop(), nn.BinaryCrossentropy{})

				rec, err := fitRecord(ctx, p, "weight-regularization", v.name, m,
					train, &val, 0, test, p.epochs(20), p.batchSize(512))
				if err != nil {
					return nil, err
				}
				runs = append(runs, rec)
			}
			return runs, nil
		},
	})
}
