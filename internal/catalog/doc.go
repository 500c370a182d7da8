// Package catalog owns the in-memory collection of scanned records.
//
// # Catalog
//
// A Catalog is an ordered collection of model.Record values plus the
// aggregate counters accumulated while scanning:
//
//	cat := catalog.New()
//	cat.Add(rec)       // successful scan
//	cat.AddError()     // failed scan, nothing stored
//
// The scan driver is the only writer during a scan; afterwards the
// catalog is mutated only through explicit calls (Deduplicate, Sort).
//
// # Queries
//
//	cat.Sort("artist")            // stable multi-key sort with fallbacks
//	cat.Search("moon")            // case-insensitive substring search
//	cat.GroupByArtist()           // insertion-ordered groups
//	stats, err := cat.Statistics()
//
// # Deduplication
//
// Deduplicate keeps the first record seen for each fingerprint and
// removes the rest. Counters are deliberately left at their scan-time
// values, so statistics after a dedup reflect everything scanned, not
// just the surviving records.
package catalog
