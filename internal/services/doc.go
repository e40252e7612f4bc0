// Package services defines shared utilities consumed across the ingestion
// pipeline and its external integrations.
//
// Key responsibilities:
//   - Sentinel error markers plus the Wrap helper that translate failures into
//     consistent wire classifications (invalid_url, transcript_unavailable...).
//   - Context helpers that stamp request correlation IDs and the authenticated
//     owner identity for logging and handler use.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across components.
package services
