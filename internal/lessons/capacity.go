package lessons

import (
	"context"
	"fmt"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/nn"
)

func init() {
	register(Lesson{
		Name:  "model-capacity",
		Title: "Smaller and bigger models on the same data",
		Summary: "The 16-16-1 baseline compared against a 4-4-1 and a " +
			"512-512-1 variant, trained identically. The bigger model " +
			"drives training loss down fastest and overfits soonest; the " +
			"smaller one underfits but its validation curve degrades more " +
			"gracefully.",
		Run: func(ctx context.Context, p Params) ([]models.RunRecord, error) {
			train, val, test, err := multiHotSets(ctx, p)
			if err != nil {
				return nil, err
			}

			variants := []int{4, 16, 512}
			runs := make([]models.RunRecord, 0, len(variants))
			for _, units := range variants {
				m := nn.NewSequential(fmt.Sprintf("capacity-%d", units),
					&nn.Dense{Units: units, Activation: nn.ReLU},
					&nn.Dense{Units: units, Activation: nn.ReLU},
					&nn.Dense{Units: 1, Activation: nn.Sigmoid},
				)
				m.Compile(nn.NewRMSprop(), nn.BinaryCrossentropy{})

				rec, err := fitRecord(ctx, p, "model-capacity",
					fmt.Sprintf("%d-%d-1", units, units), m,
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
