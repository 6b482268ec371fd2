// Package kmeans implements the K-Means clustering engine: centroid
// initialization (uniform random and k-means++), Lloyd's classic
// assignment/update iteration, and Elkan's triangle-inequality
// accelerated iteration.
//
// Both iteration strategies produce the same final centroids, labels and
// inertia from the same initial centroid set (within floating-point
// rounding); Elkan only reduces the number of point-to-centroid distance
// evaluations. Most users should go through the root package's Fit
// function instead of using this package directly.
package kmeans
