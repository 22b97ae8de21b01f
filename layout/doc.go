// Package layout maps recordings and processed stages onto a directory tree:
//
//	<root>/<sentence>/_0riginal/audio/<recording>.wav
//	<root>/<sentence>/_<pct>_percent/noisy/<stem>_<pct>_noisy.wav
//	<root>/<sentence>/_<pct>_percent/filtered/<stem>_<pct>_filtered.wav
//	<root>/<sentence>/_<pct>_percent/noise_references/<stem>_<pct>_noise_ref.wav
//
// where pct is the noise amplitude fraction in whole percent. A [Tree]
// implements batch.Loader and batch.Sink.
package layout
