// Package camseed provides a batch tool that harvests camshaft specifications
// from retailer catalog listings and emits seed data (SQL, JSON, CSV) for a
// product database.
//
// Free-form vendor copy such as "Advertised Duration 277/289, Lift .496/.520"
// is turned into structured records by an Extractor. Input adapters yield
// TextBlocks (live listing pages, saved HTML, transcribed text) and output
// adapters write the accepted records.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, postgres/).
package camseed
