// Package analysis inspects the noise field behind a wind field.
//
// The package includes tools for characterizing a rendered field:
//
//   - [CellSeries]: noise at one cell across frames
//   - [DominantFrequency]: strongest oscillation in a series, in cycles per second
//   - [Summarize]: distribution of segment angles, lengths and weights
//   - [NoiseMap]: one character per cell shaded by noise
//   - [Plot]: line chart of a series for the terminal
//
// # Animation Speed
//
// The time scale tunable sets how fast each cell drifts. A quick check:
//
//	series := analysis.CellSeries(sampler, tun, x, y, 600)
//	hz := analysis.DominantFrequency(series, 60)
package analysis
