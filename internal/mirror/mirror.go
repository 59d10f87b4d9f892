// Package mirror runs the page mirroring pipeline: fetch the document,
// extract its asset references, then resolve, retrieve and store each asset.
package mirror

import (
	"context"
	"errors"
	"time"

	"github.com/aleister1102/pagemirror/internal/common/errorwrapper"
	"github.com/aleister1102/pagemirror/internal/config"
	"github.com/aleister1102/pagemirror/internal/extractor"
	"github.com/aleister1102/pagemirror/internal/fetcher"
	"github.com/aleister1102/pagemirror/internal/models"
	"github.com/aleister1102/pagemirror/internal/ratelimit"
	"github.com/aleister1102/pagemirror/internal/storage"
	"github.com/aleister1102/pagemirror/internal/urlhandler"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Mirror mirrors one page per Run. A Mirror may be reused; every Run gets
// its own output store.
type Mirror struct {
	config    config.MirrorConfig
	timeout   time.Duration
	runID     string
	fetcher   fetcher.Fetcher
	extractor *extractor.ReferenceExtractor
	limiter   *ratelimit.HostLimiter
	logger    zerolog.Logger
}

// outcome is the result of processing one reference, waiting to be committed
type outcome struct {
	index     int
	ref       models.AssetReference
	asset     models.ResolvedAsset
	body      []byte
	attempted bool
	skipped   bool
	scheme    string
	failure   *models.AssetFailure
}

// RunID returns the ID stamped on summaries and log lines
func (m *Mirror) RunID() string {
	return m.runID
}

// Run mirrors targetURL into the configured output directory.
//
// An error means the run failed: the document could not be fetched or
// written, or ctx was cancelled. Asset failures are reported in the summary
// only. On cancellation the partial summary is returned with the error.
func (m *Mirror) Run(ctx context.Context, targetURL string) (*models.MirrorSummary, error) {
	summary := &models.MirrorSummary{
		RunID:     m.runID,
		TargetURL: targetURL,
		OutputDir: m.config.OutputDir,
		StartedAt: time.Now(),
	}

	target, err := urlhandler.NormalizeTargetURL(targetURL)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "invalid target URL")
	}
	summary.TargetURL = target

	m.logger.Info().Str("url", target).Str("output_dir", m.config.OutputDir).Msg("Fetching document")
	doc, err := fetcher.FetchDocument(ctx, m.fetcher, target, m.timeout)
	if err != nil {
		return nil, err
	}
	m.logger.Info().
		Str("url", doc.Location()).
		Int("status_code", doc.StatusCode).
		Int("bytes", len(doc.Body)).
		Msg("Document fetched")

	layout := storage.NewLayout(m.config.OutputDir, m.config.DocumentName, m.config.Layout)
	store := storage.NewStore(layout, m.config.FallbackName, m.logger)
	if err := store.Prepare(); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create output layout")
	}

	docPath, err := store.WriteDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	summary.DocumentPath = docPath
	summary.DocumentSize = len(doc.Body)

	runErr := m.mirrorAssets(ctx, doc, store, summary)

	summary.FinishedAt = time.Now()
	m.logSummary(summary)

	if runErr != nil {
		return summary, runErr
	}
	return summary, nil
}

// mirrorAssets retrieves references concurrently and commits them in reference order.
func (m *Mirror) mirrorAssets(ctx context.Context, doc *models.Document, store *storage.Store, summary *models.MirrorSummary) error {
	workers := max(m.config.Concurrency, 1)

	results := make(chan outcome, workers)
	// caps how far retrieval may run ahead of the committer
	window := make(chan struct{}, workers*4)
	committed := make(chan struct{})

	go func() {
		defer close(committed)
		m.commitInOrder(ctx, store, summary, results, window)
	}()

	var g errgroup.Group
	g.SetLimit(workers)

	index := 0
	var dispatchErr error
	for ref := range m.extractor.References(doc) {
		if m.config.MaxAssets > 0 && index >= m.config.MaxAssets {
			m.logger.Warn().Int("max_assets", m.config.MaxAssets).Msg("Asset limit reached, remaining references ignored")
			break
		}

		select {
		case window <- struct{}{}:
		case <-ctx.Done():
		}
		if err := ctx.Err(); err != nil {
			dispatchErr = err
			break
		}

		i := index
		index++

		asset, skip := m.resolve(i, ref)
		if skip != nil {
			results <- *skip
			continue
		}

		g.Go(func() error {
			results <- m.retrieve(ctx, i, ref, asset)
			return nil
		})
	}
	summary.Discovered = index

	_ = g.Wait()
	close(results)
	<-committed

	if dispatchErr != nil {
		m.logger.Warn().Err(dispatchErr).Int("dispatched", index).Msg("Mirror interrupted")
		return errorwrapper.WrapError(dispatchErr, "mirror interrupted")
	}
	return nil
}

// resolve returns the resolved asset, or a ready outcome when the reference
// is skipped or cannot be resolved.
func (m *Mirror) resolve(index int, ref models.AssetReference) (models.ResolvedAsset, *outcome) {
	asset, err := urlhandler.Resolve(ref)
	if err == nil {
		return asset, nil
	}

	o := &outcome{index: index, ref: ref}
	if errors.Is(err, errorwrapper.ErrUnfetchableScheme) {
		o.skipped = true
		o.scheme = urlhandler.Scheme(ref.Raw, ref.Origin)
		return models.ResolvedAsset{}, o
	}
	failure := models.NewAssetFailure(ref, "", models.StageResolve, 0, err)
	o.failure = &failure
	return models.ResolvedAsset{}, o
}

// retrieve waits for the host's politeness budget, then fetches the asset.
func (m *Mirror) retrieve(ctx context.Context, index int, ref models.AssetReference, asset models.ResolvedAsset) outcome {
	o := outcome{index: index, ref: ref, asset: asset}
	fail := func(status int, err error) outcome {
		failure := models.NewAssetFailure(ref, asset.Location(), models.StageRetrieve, status, err)
		o.failure = &failure
		return o
	}

	if err := m.limiter.Wait(ctx, asset.URL); err != nil {
		return fail(0, errorwrapper.WrapError(err, "politeness wait aborted"))
	}

	o.attempted = true
	m.logger.Debug().Str("url", asset.Location()).Str("category", asset.Category().String()).Msg("Retrieving asset")

	res, err := m.fetcher.Fetch(ctx, asset.Location(), fetcher.HeadersFor(asset.Category()), m.timeout)
	if err != nil {
		return fail(0, err)
	}
	if !res.IsSuccess() {
		return fail(res.StatusCode, errorwrapper.NewHTTPError(res.StatusCode, asset.Location()))
	}

	o.body = res.Body
	return o
}

// commitInOrder is the single writer. Outcomes arrive in any order and are
// applied strictly by index, so collision suffixes follow reference order.
func (m *Mirror) commitInOrder(ctx context.Context, store *storage.Store, summary *models.MirrorSummary, results <-chan outcome, window <-chan struct{}) {
	// downloads that completed are still written after cancellation
	writeCtx := context.WithoutCancel(ctx)
	pending := make(map[int]outcome)
	next := 0

	for o := range results {
		pending[o.index] = o
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			m.commit(writeCtx, store, summary, ready)
			next++
			<-window
		}
	}
}

func (m *Mirror) commit(ctx context.Context, store *storage.Store, summary *models.MirrorSummary, o outcome) {
	if o.attempted {
		summary.Attempts++
	}

	switch {
	case o.skipped:
		summary.Skipped = append(summary.Skipped, models.SkippedRef{RawRef: o.ref.Raw, Category: o.ref.Category, Scheme: o.scheme})
		m.logger.Debug().Str("ref", truncate(o.ref.Raw, 80)).Str("scheme", o.scheme).Msg("Skipped non-fetchable reference")

	case o.failure != nil:
		m.recordFailure(summary, *o.failure)

	default:
		stored, err := store.SaveAsset(ctx, o.asset, o.body)
		if err != nil {
			m.recordFailure(summary, models.NewAssetFailure(o.ref, o.asset.Location(), models.StageWrite, 0, err))
			return
		}
		summary.Stored = append(summary.Stored, stored)
		if stored.Renamed {
			summary.Collisions++
		}
		m.logger.Info().
			Str("path", stored.Path).
			Int("bytes", stored.Size).
			Str("mime_type", stored.MIMEType).
			Bool("renamed", stored.Renamed).
			Msg("Saved asset")
	}
}

func (m *Mirror) recordFailure(summary *models.MirrorSummary, failure models.AssetFailure) {
	summary.Failed = append(summary.Failed, failure)
	event := m.logger.Warn().
		Str("ref", truncate(failure.RawRef, 200)).
		Str("url", failure.URL).
		Str("stage", string(failure.Stage)).
		Err(failure.Err)
	if failure.StatusCode != 0 {
		event = event.Int("status_code", failure.StatusCode)
	}
	event.Msg("Asset failed")
}

func (m *Mirror) logSummary(summary *models.MirrorSummary) {
	m.logger.Info().
		Str("url", summary.TargetURL).
		Str("document", summary.DocumentPath).
		Int("discovered", summary.Discovered).
		Int("saved", len(summary.Stored)).
		Int("failed", len(summary.Failed)).
		Int("skipped", len(summary.Skipped)).
		Int("attempts", summary.Attempts).
		Int("collisions", summary.Collisions).
		Dur("duration", summary.Duration()).
		Msg("Mirror finished")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
