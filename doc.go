// Package kmeansgo provides an embeddable K-Means clustering library for Go.
//
// Two iteration strategies are available behind a single Fit call: classic
// Lloyd iteration and Elkan's triangle-inequality accelerated variant.
// Both produce the same centroids, labels and inertia from the same
// initial centroid set; Elkan only reduces the number of distance
// evaluations. Centroid initialization is uniform random or k-means++.
//
// # Quick Start
//
//	ctx := context.Background()
//	result, err := kmeansgo.Fit(ctx, points, 5,
//	    kmeansgo.WithInitMode(kmeansgo.InitKMeansPlusPlus),
//	    kmeansgo.WithVariant(kmeansgo.VariantElkan),
//	    kmeansgo.WithSeed(42),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Inertia, result.Iterations)
//
// # Determinism
//
// The engine holds no process-wide random state. All randomness flows
// through the seed or *rand.Rand passed via options, so a fixed seed
// reproduces the same centroids and labels run after run.
//
// # Model persistence
//
// A fitted result converts to a Model that labels new points and can be
// saved to and loaded from a compact zstd-compressed snapshot:
//
//	m := kmeansgo.NewModel(result)
//	_ = kmeansgo.SaveModelFile("model.kmg", m)
//	m2, _ := kmeansgo.LoadModelFile("model.kmg")
//	labels, _ := m2.Predict(newPoints)
package kmeansgo
