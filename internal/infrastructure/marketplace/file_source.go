package marketplace

import (
	"context"
	"fmt"
	"os"

	"gold_tracker/internal/domain/entity"
	"gold_tracker/internal/domain/service/offer"
)

// FileSource читает кандидатов из JSON-массива на диске.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) FetchRawOffers(context.Context) ([]entity.RawOffer, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	candidates, err := offer.DecodeCandidates(data)
	if err != nil {
		return nil, fmt.Errorf("offer.DecodeCandidates: %w", err)
	}

	return candidates, nil
}
