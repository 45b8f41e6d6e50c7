// Package batch runs a per-document processing function across many
// documents in parallel.
//
// The localization pipeline is CPU-bound and embarrassingly parallel at
// document granularity: no state is shared between documents, so the
// [Runner] fans document ids out to a fixed pool of workers and collects
// one [Result] per document. A document's failure is recorded in its
// Result and never aborts its siblings; cancelling the context stops
// dispatch of documents that have not started.
//
//	runner := batch.NewRunner(4, logger)
//	results := runner.Run(ctx, ids, func(ctx context.Context, id string) error {
//	    return processDocument(id)
//	})
package batch
