package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Dosada05/cue-league/models"
)

const archiveContentType = "application/json"

// DrawArchiver writes finished draws to object storage as JSON snapshots.
type DrawArchiver struct {
	uploader FileUploader
}

func NewDrawArchiver(uploader FileUploader) *DrawArchiver {
	return &DrawArchiver{uploader: uploader}
}

func KnockoutArchiveKey(id int) string {
	return fmt.Sprintf("draws/knockout/%d.json", id)
}

func RoundRobinArchiveKey(id int) string {
	return fmt.Sprintf("draws/roundrobin/%d.json", id)
}

func (a *DrawArchiver) ArchiveKnockout(ctx context.Context, draw *models.KnockoutDraw) (*UploadResult, error) {
	return a.put(ctx, KnockoutArchiveKey(draw.ID), draw)
}

func (a *DrawArchiver) ArchiveRoundRobin(ctx context.Context, draw *models.RoundRobinDraw) (*UploadResult, error) {
	return a.put(ctx, RoundRobinArchiveKey(draw.ID), draw)
}

func (a *DrawArchiver) put(ctx context.Context, key string, v interface{}) (*UploadResult, error) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode archive %s: %w", key, err)
	}
	return a.uploader.Upload(ctx, key, archiveContentType, bytes.NewReader(body))
}
