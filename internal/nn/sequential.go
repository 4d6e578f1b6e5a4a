package nn

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/sbwhitecap/tqdm"
	"github.com/sbwhitecap/tqdm/iterators"
	"gonum.org/v1/gonum/mat"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/data"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/monitoring"
)

// Sequential is a linear stack of layers trained end to end.
type Sequential struct {
	name   string
	layers []Layer

	loss Loss
	opt  Optimizer

	built    bool
	inShape  Shape
	outShape Shape
	params   []*Param
}

func NewSequential(name string, layers ...Layer) *Sequential {
	return &Sequential{name: name, layers: layers}
}

func (m *Sequential) Add(l Layer) { m.layers = append(m.layers, l) }

// Compile binds the optimizer and loss. Must happen before Fit or
// Evaluate.
func (m *Sequential) Compile(opt Optimizer, loss Loss) {
	m.opt = opt
	m.loss = loss
}

// Build walks the stack once, checking shape compatibility between
// adjacent layers and initializing weights from the seed.
func (m *Sequential) Build(in Shape, seed int64) error {
	if m.built {
		return nil
	}
	if len(m.layers) == 0 {
		return fmt.Errorf("[NN] model %q has no layers", m.name)
	}
	rng := rand.New(rand.NewSource(seed))
	shape := in
	for _, l := range m.layers {
		out, err := l.Build(shape, rng)
		if err != nil {
			return fmt.Errorf("[NN] building %q: %w", m.name, err)
		}
		shape = out
		m.params = append(m.params, l.Params()...)
	}
	m.inShape, m.outShape = in, shape
	m.built = true
	return nil
}

// FitConfig controls one training run.
type FitConfig struct {
	Epochs    int
	BatchSize int
	// ValidationSplit holds out the trailing fraction of the training
	// set. Ignored when Validation is set.
	ValidationSplit float64
	// Validation is an explicit co-indexed validation pair.
	Validation *data.Set
	// NoShuffle disables the per-epoch permutation.
	NoShuffle bool
	Seed      int64
	// Progress draws a per-epoch tqdm bar over batches.
	Progress bool
	// Status, when set, is kept current for the heartbeat monitor.
	Status *monitoring.TrainingStatus
	// Quiet suppresses the per-epoch log line.
	Quiet bool
}

// FitResult is the training history plus per-epoch wall time.
type FitResult struct {
	History      models.History
	EpochSeconds []float64
}

// Fit trains for the configured epochs over mini-batches, recording
// per-epoch loss and accuracy, and validation metrics when a validation
// set is present. Cancellation via ctx stops at the next batch
// boundary.
func (m *Sequential) Fit(ctx context.Context, train data.Set, cfg FitConfig) (*FitResult, error) {
	if m.loss == nil || m.opt == nil {
		return nil, fmt.Errorf("[NN] model %q must be compiled before fitting", m.name)
	}
	if cfg.Epochs <= 0 {
		return nil, fmt.Errorf("[NN] epochs must be positive, got %d", cfg.Epochs)
	}
	if train.Len() == 0 {
		return nil, fmt.Errorf("[NN] empty training set")
	}
	_, cols := train.X.Dims()
	if err := m.Build(Shape{Features: cols}, cfg.Seed); err != nil {
		return nil, err
	}
	if cols != m.inShape.Cols() {
		return nil, fmt.Errorf("[NN] model %q was built for %d input columns, got %d", m.name, m.inShape.Cols(), cols)
	}

	val := cfg.Validation
	if val == nil && cfg.ValidationSplit > 0 {
		nVal := int(float64(train.Len()) * cfg.ValidationSplit)
		if nVal == 0 || nVal >= train.Len() {
			return nil, fmt.Errorf("[NN] validation split %g leaves no data", cfg.ValidationSplit)
		}
		// The trailing fraction becomes the validation set, features and
		// labels sliced together.
		nTrain := train.Len() - nVal
		v := data.Set{
			X: mat.DenseCopyOf(train.X.Slice(nTrain, train.Len(), 0, cols)),
			Y: mat.DenseCopyOf(train.Y.Slice(nTrain, train.Len(), 0, 1)),
		}
		train = data.Set{
			X: train.X.Slice(0, nTrain, 0, cols).(*mat.Dense),
			Y: train.Y.Slice(0, nTrain, 0, 1).(*mat.Dense),
		}
		val = &v
	}
	if val != nil {
		_, vc := val.X.Dims()
		if vc != cols {
			return nil, fmt.Errorf("[NN] validation features have %d columns, training has %d", vc, cols)
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed + 1))
	history := models.History{}
	result := &FitResult{History: history}

	ranges := data.BatchRanges(train.Len(), cfg.BatchSize)
	if cfg.Status != nil {
		cfg.Status.TotalEpochs.Store(int64(cfg.Epochs))
		cfg.Status.TotalBatches.Store(int64(len(ranges)))
	}

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		epochStart := time.Now()
		if cfg.Status != nil {
			cfg.Status.Epoch.Store(int64(epoch))
		}

		var perm []int
		if !cfg.NoShuffle {
			perm = data.Perm(train.Len(), rng)
		}

		var lossSum, accSum float64
		runBatch := func(b int) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if cfg.Status != nil {
				cfg.Status.Batch.Store(int64(b + 1))
			}
			start, end := ranges[b][0], ranges[b][1]

			var bx, by *mat.Dense
			if perm != nil {
				// Copy only the batch rows; the full set stays in place.
				batch := data.Gather(train, perm[start:end])
				bx, by = batch.X, batch.Y
			} else {
				bx = train.X.Slice(start, end, 0, cols).(*mat.Dense)
				by = train.Y.Slice(start, end, 0, 1).(*mat.Dense)
			}

			batchLoss, batchAcc := m.trainStep(bx, by)
			n := float64(end - start)
			lossSum += batchLoss * n
			accSum += batchAcc * n
			return nil
		}

		var err error
		if cfg.Progress {
			_ = tqdm.With(iterators.Interval(0, len(ranges)), fmt.Sprintf("Epoch %d/%d", epoch, cfg.Epochs), func(c interface{}) (brk bool) {
				if e := runBatch(c.(int)); e != nil {
					err = e
					return true
				}
				return
			})
		} else {
			for b := range ranges {
				if err = runBatch(b); err != nil {
					break
				}
			}
		}
		if err != nil {
			return nil, fmt.Errorf("[NN] fit interrupted: %w", err)
		}

		n := float64(train.Len())
		history.Append(models.MetricLoss, lossSum/n)
		history.Append(models.MetricAccuracy, accSum/n)

		logAttrs := []any{
			slog.String("model", m.name),
			slog.Int("epoch", epoch),
			slog.Float64("loss", lossSum/n),
			slog.Float64("accuracy", accSum/n),
		}
		if val != nil {
			vLoss, vAcc := m.Evaluate(*val)
			history.Append(models.MetricValLoss, vLoss)
			history.Append(models.MetricValAccuracy, vAcc)
			logAttrs = append(logAttrs,
				slog.Float64("val_loss", vLoss),
				slog.Float64("val_accuracy", vAcc))
		}
		result.EpochSeconds = append(result.EpochSeconds, time.Since(epochStart).Seconds())

		if !cfg.Quiet {
			slog.Info("[NN] Epoch complete", logAttrs...)
		}
	}
	return result, nil
}

// trainStep runs one forward/backward pass and an optimizer update,
// returning the batch loss (including weight penalties) and accuracy
// measured before the update.
func (m *Sequential) trainStep(x, y *mat.Dense) (float64, float64) {
	for _, p := range m.params {
		p.zeroGrad()
	}

	out := x
	for _, l := range m.layers {
		out = l.Forward(out, true)
	}

	loss := m.loss.Value(out, y) + m.regLoss()
	acc := BinaryAccuracy(out, y)

	grad := m.loss.Grad(out, y)
	for i := len(m.layers) - 1; i >= 0; i-- {
		grad = m.layers[i].Backward(grad)
		if grad == nil && i > 0 {
			// A terminal layer mid-stack would starve everything below.
			panic(fmt.Sprintf("layer %s returned no input gradient but is not first", m.layers[i].Name()))
		}
	}

	m.opt.Step(m.params)
	return loss, acc
}

// regLoss sums the weight penalties of all regularized layers.
func (m *Sequential) regLoss() float64 {
	var sum float64
	for _, l := range m.layers {
		if r, ok := l.(regularized); ok {
			sum += r.regLoss()
		}
	}
	return sum
}

// Predict runs inference on a feature matrix.
func (m *Sequential) Predict(x *mat.Dense) *mat.Dense {
	out := x
	for _, l := range m.layers {
		out = l.Forward(out, false)
	}
	return out
}

// Evaluate reports loss and binary accuracy on a set.
func (m *Sequential) Evaluate(s data.Set) (loss, acc float64) {
	pred := m.Predict(s.X)
	return m.loss.Value(pred, s.Y), BinaryAccuracy(pred, s.Y)
}

// OutputShape is the built model's per-example output layout.
func (m *Sequential) OutputShape() Shape { return m.outShape }

// Summary is a one-line description of the stack.
func (m *Sequential) Summary() string {
	names := make([]string, 0, len(m.layers))
	for _, l := range m.layers {
		names = append(names, l.Name())
	}
	return fmt.Sprintf("%s: %s", m.name, strings.Join(names, " -> "))
}

func (m *Sequential) Name() string { return m.name }
