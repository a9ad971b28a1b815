package reparojson_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/nsfisis/reparojson"
)

func BenchmarkRepair(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Repair", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := reparojson.Repair(bytes.NewReader(input), io.Discard); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
