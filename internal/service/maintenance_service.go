package service

import (
	"context"

	"github.com/echoplay/server/internal/repository"
	"github.com/echoplay/server/pkg/logger"
)

// BlobLister extends BlobStore with enumeration, for the orphan sweep.
type BlobLister interface {
	ListFiles() ([]string, error)
	Remove(fileName string) error
}

// MaintenanceService removes media blobs no audio row references
// anymore. Orphans appear when a process dies between blob write and
// row insert, or between row delete and blob removal.
type MaintenanceService struct {
	audioRepo repository.AudioRepository
	blobs     BlobLister
	log       logger.Logger
}

// NewMaintenanceService creates the maintenance service.
func NewMaintenanceService(audioRepo repository.AudioRepository, blobs BlobLister, log logger.Logger) *MaintenanceService {
	return &MaintenanceService{
		audioRepo: audioRepo,
		blobs:     blobs,
		log:       log,
	}
}

// PruneOrphanBlobs deletes stored blobs that no audio row references.
// Returns how many blobs were removed.
func (s *MaintenanceService) PruneOrphanBlobs(ctx context.Context) (int, error) {
	referenced, err := s.audioRepo.ListFileNames(ctx)
	if err != nil {
		return 0, err
	}
	keep := make(map[string]struct{}, len(referenced))
	for _, name := range referenced {
		keep[name] = struct{}{}
	}

	stored, err := s.blobs.ListFiles()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, name := range stored {
		if _, ok := keep[name]; ok {
			continue
		}
		if err := s.blobs.Remove(name); err != nil {
			s.log.Warn("failed to remove orphan blob",
				logger.String("file", name), logger.Error(err))
			continue
		}
		pruned++
	}

	if pruned > 0 {
		s.log.Info("pruned orphan blobs", logger.Int("count", pruned))
	}
	return pruned, nil
}
