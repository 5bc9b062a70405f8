package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

// BenchmarkSetProgress benchmarks rewriting a progress document of realistic size
func BenchmarkSetProgress(b *testing.B) {
	kv, err := Open(filepath.Join(b.TempDir(), DatabaseFile), DriverPure)
	if err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	defer kv.Close()

	value := `{` + strings.Repeat(`"topic":{"status":"completed","note":"","deadline":null},`, 200) + `"last":{}}`
	ctx := context.Background()

	b.ResetTimer()
	for b.Loop() {
		if err := kv.Set(ctx, "roadmapProgress", value); err != nil {
			b.Fatalf("set failed: %v", err)
		}
	}
}
