package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
	"github.com/feral-file/sei-marketplace-indexer/internal/uri"
)

// Fetcher reads off-chain NFT and collection metadata.
// Both lookups are best-effort: failures are logged and an empty document is returned.
//
//go:generate mockgen -source=fetcher.go -destination=../mocks/metadata_fetcher.go -package=mocks -mock_names=Fetcher=MockMetadataFetcher
type Fetcher interface {
	NftMetadata(ctx context.Context, tokenURI string) *NftMetadata
	CollectionMetadata(ctx context.Context, address string) *CollectionMetadata
}

// Config holds the fetcher settings
type Config struct {
	PalletAPIURL string
	// MaxAttempts counts the first request
	MaxAttempts uint64
	RetryDelay  time.Duration
	// Timeout bounds a whole NFT metadata lookup, retries included
	Timeout time.Duration
}

type fetcher struct {
	httpClient  adapter.HTTPClient
	uriResolver uri.Resolver
	limiter     *rate.Limiter
	config      Config
}

// NewFetcher creates a metadata fetcher. limiter may be nil.
func NewFetcher(httpClient adapter.HTTPClient, uriResolver uri.Resolver, limiter *rate.Limiter, config Config) Fetcher {
	if config.MaxAttempts == 0 {
		config.MaxAttempts = 1
	}
	return &fetcher{
		httpClient:  httpClient,
		uriResolver: uriResolver,
		limiter:     limiter,
		config:      config,
	}
}

func (f *fetcher) NftMetadata(ctx context.Context, tokenURI string) *NftMetadata {
	tokenURI = strings.TrimSpace(tokenURI)
	if tokenURI == "" {
		return &NftMetadata{}
	}

	ctx = logger.WithFields(ctx, zap.String("tokenURI", truncate(tokenURI, 256)))

	if uri.IsDataURI(tokenURI) {
		meta, err := f.fromDataURI(tokenURI)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to decode inline metadata", zap.Error(err))
			return &NftMetadata{}
		}
		return meta
	}

	if f.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.config.Timeout)
		defer cancel()
	}

	resolved, err := f.uriResolver.Resolve(ctx, tokenURI)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to resolve token URI", zap.Error(err))
		return &NftMetadata{}
	}

	var meta NftMetadata
	operation := func() error {
		if err := f.wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		body, contentType, err := f.httpClient.GetRaw(ctx, resolved)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}

		return decodeJSONBody(body, contentType, &meta)
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(f.config.RetryDelay), f.config.MaxAttempts-1),
		ctx)
	if err := backoff.Retry(operation, b); err != nil {
		logger.WarnCtx(ctx, "Failed to fetch NFT metadata",
			zap.String("url", resolved),
			zap.Error(err))
		return &NftMetadata{}
	}

	return &meta
}

func (f *fetcher) CollectionMetadata(ctx context.Context, address string) *CollectionMetadata {
	if f.config.PalletAPIURL == "" {
		return &CollectionMetadata{}
	}

	endpoint := fmt.Sprintf("%s/v2/nfts/%s/details",
		strings.TrimRight(f.config.PalletAPIURL, "/"), url.PathEscape(address))

	if err := f.wait(ctx); err != nil {
		return &CollectionMetadata{}
	}

	var meta CollectionMetadata
	if err := f.httpClient.Get(ctx, endpoint, &meta); err != nil {
		logger.WarnCtx(ctx, "Failed to fetch collection metadata",
			zap.String("collection", address),
			zap.Error(err))
		return &CollectionMetadata{}
	}

	return &meta
}

func (f *fetcher) fromDataURI(tokenURI string) (*NftMetadata, error) {
	parsed, err := uri.ParseDataURI(tokenURI)
	if err != nil {
		return nil, err
	}

	var meta NftMetadata
	if err := json.Unmarshal(parsed.Data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse inline metadata: %w", err)
	}
	return &meta, nil
}

func (f *fetcher) wait(ctx context.Context) error {
	if f.limiter == nil {
		return nil
	}
	return f.limiter.Wait(ctx)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
