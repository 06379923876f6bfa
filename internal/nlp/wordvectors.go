package nlp

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
)

const vectorScanBufSize = 1 << 20

// VectorStore is an in-memory word-vector table loaded from a text file in
// the word2vec/GloVe text format: each line holds a word followed by its
// vector components. A leading "count dimension" header line is skipped.
type VectorStore struct {
	dim     int
	vectors map[string][]float64
}

func LoadVectorsFile(path string) (*VectorStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	store := &VectorStore{vectors: make(map[string][]float64)}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), vectorScanBufSize)
	first := true
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if first {
			first = false
			if isHeaderLine(fields) {
				continue
			}
		}
		if len(fields) < 2 {
			continue
		}
		vec := make([]float64, 0, len(fields)-1)
		ok := true
		for _, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vec = append(vec, v)
		}
		if !ok {
			continue
		}
		if store.dim == 0 {
			store.dim = len(vec)
		}
		if len(vec) != store.dim {
			continue
		}
		store.vectors[strings.ToLower(fields[0])] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vectors file: %w", err)
	}
	if len(store.vectors) == 0 {
		return nil, fmt.Errorf("no vectors found in %s", path)
	}
	return store, nil
}

// isHeaderLine detects the word2vec "vocab_size dimension" header.
func isHeaderLine(fields []string) bool {
	if len(fields) != 2 {
		return false
	}
	for _, f := range fields {
		if _, err := strconv.Atoi(f); err != nil {
			return false
		}
	}
	return true
}

func (s *VectorStore) Vector(word string) ([]float64, bool) {
	v, ok := s.vectors[strings.ToLower(word)]
	return v, ok
}

// Dim returns the vector dimensionality.
func (s *VectorStore) Dim() int { return s.dim }

var (
	vectorsOnce  sync.Once
	vectorsStore *VectorStore
)

// LoadWordVectors returns the process-wide word-vector store. The first call
// loads the configured file; a missing path or load failure leaves the
// capability absent for the process lifetime.
func LoadWordVectors(path string) (*VectorStore, bool) {
	vectorsOnce.Do(func() {
		if path == "" {
			return
		}
		store, err := LoadVectorsFile(path)
		if err != nil {
			log.Printf("Word vectors unavailable, capability disabled: %v", err)
			return
		}
		vectorsStore = store
	})
	return vectorsStore, vectorsStore != nil
}
