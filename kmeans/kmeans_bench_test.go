package kmeans

import (
	"context"
	"math/rand"
	"testing"
)

func benchmarkVariant(b *testing.B, variant Variant) {
	rng := rand.New(rand.NewSource(1))
	var data [][]float64
	for c := 0; c < 10; c++ {
		cx := float64(c * 10)
		for i := 0; i < 500; i++ {
			data = append(data, []float64{cx + rng.NormFloat64(), cx + rng.NormFloat64()})
		}
	}

	ctx := context.Background()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := Run(ctx, data, Config{
			K:             10,
			MaxIterations: 50,
			Tolerance:     0,
			Variant:       variant,
			InitMode:      InitKMeansPlusPlus,
			Rand:          rand.New(rand.NewSource(42)),
			Parallelism:   1,
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLloyd(b *testing.B) { benchmarkVariant(b, VariantLloyd) }
func BenchmarkElkan(b *testing.B) { benchmarkVariant(b, VariantElkan) }
