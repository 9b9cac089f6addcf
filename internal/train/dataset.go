// Package train fits the house price model and writes the artifact the
// prediction service loads.
package train

import "houseprice/internal/storage"

// SampleDataset returns the reference dataset: surfaces from 50 to 200 m²,
// room counts growing with the surface, and a price of 3000 per m².
func SampleDataset() []storage.Sample {
	pieces := []float64{2, 2, 3, 3, 3, 4, 4, 4, 5, 5, 5, 6, 6, 6, 7, 7}

	samples := make([]storage.Sample, len(pieces))
	for i, p := range pieces {
		surface := float64(50 + 10*i)
		samples[i] = storage.Sample{
			Surface: surface,
			Pieces:  p,
			Prix:    surface * 3000,
		}
	}
	return samples
}
