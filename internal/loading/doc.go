// Package loading drives a material point along a sequence of prescribed
// increments, the way a test machine runs a load program.
//
//   - [Step]: one prescribed increment and the scenario that owns it
//   - [Path]: an ordered list of steps, built by [Ramp], [Cyclic] or
//     expanded from [Segment] lists
//   - [Driver]: solves, commits and records every step in order
//   - [Ensemble]: runs independent material points in parallel
//
// # Thread Safety
//
// A Driver run owns its material model. Ensemble gives every run its own
// model and its own metrics.
package loading
