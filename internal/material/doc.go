// Package material defines the strain-driven constitutive models consumed by
// the increment solver.
//
// A [Model] keeps a committed [State] (the last accepted step) and at most
// one pending [Prediction]. [Model.Integrate] always starts from the
// committed state, so repeated integrations without a commit in between
// never advance history. [Model.Commit] accepts the pending prediction and
// consumes it; a second commit without a new integration fails with
// [ErrNoPrediction].
//
// # Thread Safety
//
// Models are NOT thread-safe. Drive each material point from one goroutine.
package material
