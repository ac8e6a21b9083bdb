// Package slideforge turns a directory of standalone HTML slide documents
// into a single PDF or a 16x9 slide deck.
//
// The pipeline resolves slides in natural numeric order, renders each one
// to a single-page artifact through headless Chrome or WeasyPrint, and
// merges the pages in slide order. Per-slide failures are recorded in a
// Report and skipped; a run only fails outright when no slide succeeds.
//
// Basic usage:
//
//	set, err := slideforge.Resolve("slides")
//	if err != nil { ... }
//	store, err := slideforge.NewArtifactStore()
//	if err != nil { ... }
//	r := slideforge.NewChromeRenderer(slideforge.ArtifactPDF)
//	defer r.Close()
//	sink := slideforge.NewPDFSink("slides.pdf")
//	report, err := slideforge.RunSequential(ctx, set, r, sink, store)
//
// RunParallel renders with a RendererPool for multi-worker runs. The
// bridge functions PDFToDeck and DeckToPDF convert between the two
// output formats after the fact.
package slideforge
