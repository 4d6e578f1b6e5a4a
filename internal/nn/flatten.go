package nn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Flatten reinterprets a sequence as one flat vector per example. The
// row-major layout already matches, so both passes are identity on the
// data.
type Flatten struct{}

func (Flatten) Name() string { return "flatten" }

func (Flatten) Build(in Shape, _ *rand.Rand) (Shape, error) {
	if in.Steps == 0 {
		return Shape{}, fmt.Errorf("flatten needs a sequence input, got %s", in)
	}
	return Shape{Features: in.Steps * in.Features}, nil
}

func (Flatten) Forward(x *mat.Dense, _ bool) *mat.Dense { return x }

func (Flatten) Backward(grad *mat.Dense) *mat.Dense { return grad }

func (Flatten) Params() []*Param { return nil }
