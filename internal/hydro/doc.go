// Package hydro provides the analytic side of the linear wave convergence
// test: the characteristic wave speeds of the 2D compressible Euler
// equations linearized about a uniform background state.
//
// The five characteristic families are fixed and ordered:
//
//   - [LeftAcoustic]:  vx - cs
//   - [Entropy1..3]:   vx (triple degenerate for an x-directed background)
//   - [RightAcoustic]: vx + cs
//
// Downstream code picks the evolution time for a wave family as one
// crossing period, 1/|speed|, so a zero-speed entropy mode (vx = 0) is a
// domain error here rather than a silent infinity.
package hydro
