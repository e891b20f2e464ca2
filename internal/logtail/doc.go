// Package logtail reads the end of docket's log file and renders its
// logfmt records for a terminal.
//
// Read keeps a ring of the last maxLines lines, so memory stays bounded by
// the number of lines requested rather than the file size. A missing file is
// not an error; it reads as empty.
//
// Parse decodes one record with go-logfmt, lifting the time, level, prefix
// and msg keys out and keeping the rest in order. Lines from other writers
// (panics, partial writes) stay unparsed and are printed verbatim.
//
//	lines, err := logtail.Read(cfg.LogFile, 50)
//	entries := logtail.Filter(logtail.ParseLines(lines), log.WarnLevel)
//	palette := logtail.DefaultPalette(lipgloss.NewRenderer(os.Stdout))
//	for _, e := range entries {
//		fmt.Println(palette.Colorize(e))
//	}
package logtail
