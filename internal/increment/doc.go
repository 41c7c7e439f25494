// Package increment finds the strain increment that takes a material model
// to a partially prescribed stress/strain state.
//
// The package defines:
//
//   - [Solve]: the fixed-point driver that integrates a trial increment,
//     measures the stress residual and asks a [Corrector] for an update
//   - [Corrector]: one-method strategy deciding which components are free
//   - [UniaxialStrain], [BiaxialStrain], [StressDrivenUniaxial]: the
//     push-pull, biaxial and stress-controlled test machine emulations
//
// # Example
//
//	m, _ := material.NewElastic(200000, 0.3)
//	res, err := increment.SolveUniaxialStrain(m, 2.5e-4, 0.25, nil, increment.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	_ = m.Commit() // the solver never commits
//
// # Thread Safety
//
// A solve owns its material model for its whole duration. Solves on
// different models may run concurrently; solves on the same model must not.
package increment
