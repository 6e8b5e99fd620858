// Package scaling resolves operation tokens such as "denormalize_to=150" into
// the multiplicative [Factor] applied to pixel coordinates.
//
// Scaling values are display scaling percentages in the range [MinScaling,
// MaxScaling]. Normalizing converts coordinates recorded at a non-standard
// scaling back to the 100% baseline; denormalizing converts from the baseline
// to the given scaling.
package scaling
