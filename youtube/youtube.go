// Package youtube downloads remote videos into the upload store.
package youtube

import (
	"context"
	"io"
	"os"

	yt "github.com/kkdai/youtube/v2"
	"go.uber.org/zap"

	"media-studio/apperr"
	"media-studio/store"
)

// Fetcher downloads the best available combined video+audio stream for a
// URL into the upload store.
type Fetcher struct {
	client yt.Client
	log    *zap.Logger
}

// NewFetcher returns a fetcher.
func NewFetcher(log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{log: log}
}

// Fetch downloads the video behind url and returns the stored file's
// identifier and path. Failures surface as a single descriptive error.
func (f *Fetcher) Fetch(ctx context.Context, url string, uploads *store.Store) (string, string, error) {
	video, err := f.client.GetVideoContext(ctx, url)
	if err != nil {
		return "", "", apperr.Wrap(apperr.InvalidInput, err, "error downloading video from %s", url)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return "", "", apperr.New(apperr.InvalidMedia, "no combined video+audio format available for %s", url)
	}
	formats.Sort()

	stream, _, err := f.client.GetStreamContext(ctx, video, &formats[0])
	if err != nil {
		return "", "", apperr.Wrap(apperr.InvalidMedia, err, "error opening video stream for %s", url)
	}
	defer stream.Close()

	id, path := uploads.Reserve(".mp4")
	out, err := os.Create(path)
	if err != nil {
		return "", "", apperr.Wrap(apperr.Internal, err, "creating %s", path)
	}
	defer out.Close()

	if _, err := io.Copy(out, stream); err != nil {
		os.Remove(path)
		return "", "", apperr.Wrap(apperr.Internal, err, "writing video stream to %s", path)
	}

	f.log.Info("video downloaded", zap.String("url", url), zap.String("file_id", id))
	return id, path, nil
}
