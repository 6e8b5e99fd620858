// Package xaml rescales the pixel coordinates stored in UI-automation
// workflow (XAML) documents.
//
// A [Catalog] lists the structural [Pattern]s that identify coordinate-bearing
// elements: cursor positions (OffsetX and OffsetY attributes) and clipping
// regions (a Rectangle attribute holding "x,y,width,height"). A [Rescaler]
// finds every element matching the catalog and multiplies the integer values
// of those attributes by a [scaling.Factor]. Anything else in the document is
// left as it was read.
package xaml
