// Package corpus handles ingestion and output for the simhash driver:
// reading fingerprints from TSV or JSON-lines inputs, hashing document text
// into feature hashes, and writing cluster assignments back out as TSV.
//
// The core search in the parent package operates on bare uint64
// fingerprints; this package owns everything around them — document ids,
// file formats, shingling, and the mapping from fingerprints back to the
// records that produced them.
package corpus
