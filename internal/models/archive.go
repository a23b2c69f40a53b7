// Package models defines the domain types shared across anyt packages.
package models

import "time"

// ArchiveMetadata describes one corpus archive (.tgz) on disk.
type ArchiveMetadata struct {
	Path     string    `json:"path"`
	Checksum string    `json:"checksum"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
}

// Archive is an archive as recorded in the index.
type Archive struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	Documents int       `json:"documents"`
	IndexedAt time.Time `json:"indexed_at"`
}

// SectionCount is one facet of the online section breakdown.
type SectionCount struct {
	Section string `json:"section"`
	Count   int    `json:"count"`
}
