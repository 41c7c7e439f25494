// Package voigt provides the six-component representation of symmetric
// second-order tensors used throughout the driver.
//
// Components are ordered as
//
//	[11, 22, 33, 23, 13, 12]
//
// Strain vectors carry engineering shear (γ = 2ε) in the last three slots,
// stress vectors carry the tensorial shear directly. Use [StrainToTensor]
// and [StressToTensor] (and their inverses) when crossing between the two
// forms; mixing them up silently doubles or halves the shear response.
package voigt
