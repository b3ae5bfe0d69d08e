// Package catalog loads the movie catalog from its CSV source.
//
// Load reads the IMDB top-1000 column layout, normalizes release years and
// runtimes, imputes missing years with the corpus median, and composes the
// content blob used for vectorization. Rows that cannot be normalized are
// dropped and reported as RecordErrors alongside the loaded movies so callers
// can log them without aborting the load.
package catalog
