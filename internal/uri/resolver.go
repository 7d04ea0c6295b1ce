package uri

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
)

// Config holds configuration for the URI resolver
type Config struct {
	// IPFSGateways is the list of IPFS gateways to try, in order of preference
	IPFSGateways []string
	// ArweaveGateways is the list of Arweave gateways to try, in order of preference
	ArweaveGateways []string
}

// Resolver defines the interface for resolving URIs
//
//go:generate mockgen -source=resolver.go -destination=../mocks/uri_resolver.go -package=mocks -mock_names=Resolver=MockURIResolver
type Resolver interface {
	// Resolve turns a token URI into a fetchable URL.
	// ipfs:// and ar:// URIs and /ipfs/ gateway URLs are rewritten to a gateway that
	// answers a HEAD request with 200. Other http(s) URLs and data: URIs pass through.
	// When no gateway answers, the first configured gateway is used.
	Resolve(ctx context.Context, uri string) (string, error)
}

type resolver struct {
	httpClient adapter.HTTPClient
	config     *Config
}

func NewResolver(httpClient adapter.HTTPClient, config *Config) Resolver {
	return &resolver{
		httpClient: httpClient,
		config:     config,
	}
}

func (r *resolver) Resolve(ctx context.Context, uri string) (string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", fmt.Errorf("empty uri")
	}

	if IsDataURI(uri) {
		return uri, nil
	}

	if cid, ok := strings.CutPrefix(uri, "ipfs://"); ok {
		return r.resolveIPFS(ctx, strings.TrimPrefix(cid, "ipfs/"))
	}

	if txID, ok := strings.CutPrefix(uri, "ar://"); ok {
		return r.resolveArweave(ctx, txID)
	}

	// Gateway URLs are re-pinned to a configured gateway, e.g. https://example.com/ipfs/QmXxx
	if _, cid, ok := strings.Cut(uri, "/ipfs/"); ok && cid != "" {
		return r.resolveIPFS(ctx, cid)
	}

	return uri, nil
}

func (r *resolver) resolveIPFS(ctx context.Context, cid string) (string, error) {
	if len(r.config.IPFSGateways) == 0 {
		return "", fmt.Errorf("no IPFS gateways configured")
	}

	candidates := make([]string, 0, len(r.config.IPFSGateways))
	for _, gw := range r.config.IPFSGateways {
		candidates = append(candidates, fmt.Sprintf("%s/ipfs/%s", strings.TrimRight(gw, "/"), cid))
	}
	return r.firstReachable(ctx, "ipfs", candidates), nil
}

func (r *resolver) resolveArweave(ctx context.Context, txID string) (string, error) {
	if len(r.config.ArweaveGateways) == 0 {
		return "", fmt.Errorf("no Arweave gateways configured")
	}

	candidates := make([]string, 0, len(r.config.ArweaveGateways))
	for _, gw := range r.config.ArweaveGateways {
		candidates = append(candidates, fmt.Sprintf("%s/%s", strings.TrimRight(gw, "/"), txID))
	}
	return r.firstReachable(ctx, "arweave", candidates), nil
}

// firstReachable checks candidates in parallel and returns the most preferred one that
// answered 200. Falls back to candidates[0].
func (r *resolver) firstReachable(ctx context.Context, kind string, candidates []string) string {
	ok := make([]bool, len(candidates))

	var wg sync.WaitGroup
	for i, url := range candidates {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()

			resp, err := r.httpClient.Head(ctx, url)
			if err != nil {
				logger.DebugCtx(ctx, "gateway check failed", zap.String("url", url), zap.Error(err))
				return
			}
			if err := resp.Body.Close(); err != nil {
				logger.WarnCtx(ctx, "failed to close response body", zap.Error(err), zap.String("url", url))
			}
			ok[i] = resp.StatusCode == http.StatusOK
		}(i, url)
	}
	wg.Wait()

	for i, url := range candidates {
		if ok[i] {
			logger.DebugCtx(ctx, "Found working gateway", zap.String("kind", kind), zap.String("url", url))
			return url
		}
	}

	logger.WarnCtx(ctx, "No gateway answered, using the first one",
		zap.String("kind", kind),
		zap.String("url", candidates[0]))
	return candidates[0]
}
