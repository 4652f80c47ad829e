package services

import (
	"fmt"
	"io"
	"strings"

	"winelink/internal/services/dto"
)

// WriteReportText renders the report as plain text for /scan?format=text and the scan command.
func WriteReportText(w io.Writer, r *dto.ScanReport) error {
	var b strings.Builder

	if !r.OK {
		fmt.Fprintf(&b, "scan failed: %s\n", r.Error)
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "wines: %d\n", r.TotalWines)
	fmt.Fprintf(&b, "description files: %d in %s (%s)%s\n", r.DescriptionFiles, r.DescriptionDir, r.DescriptionExt, absent(r.DescriptionDirExists))
	fmt.Fprintf(&b, "bottle images: %d in %s%s\n", r.BottleFiles, r.BottleDir, absent(r.BottleDirExists))

	writeRefs(&b, "missing description field", r.MissingDescriptionField)
	writeRefs(&b, "missing on disk", r.MissingOnDisk)
	writeRefs(&b, "missing bottle image", r.MissingBottleImage)
	writeNames(&b, "unused description files", r.UnusedDescriptionFiles)
	writeNames(&b, "unused bottle files", r.UnusedBottleFiles)

	fmt.Fprintf(&b, "\nduplicate description references (%d)\n", len(r.DuplicateDescriptionReferences))
	for _, d := range r.DuplicateDescriptionReferences {
		ids := make([]string, 0, len(d.Wines))
		for _, w := range d.Wines {
			ids = append(ids, fmt.Sprintf("#%d", w.ID))
		}
		fmt.Fprintf(&b, "  %s: %s\n", d.PdfFile, strings.Join(ids, " "))
	}

	fmt.Fprintf(&b, "\nduplicate bottle stems (%d)\n", len(r.DuplicateBottleStems))
	for _, d := range r.DuplicateBottleStems {
		fmt.Fprintf(&b, "  %s: %s\n", d.Stem, strings.Join(d.Files, " "))
	}

	writeTable(&b, "by color", r.Aggregates.ByColor)
	writeTable(&b, "by sugar", r.Aggregates.BySugar)
	writeTable(&b, "by sparkling", r.Aggregates.BySparkling)
	writeTable(&b, "by country", r.Aggregates.ByCountry)
	writeTable(&b, "by grape", r.Aggregates.ByGrape)

	_, err := io.WriteString(w, b.String())
	return err
}

func absent(exists bool) string {
	if exists {
		return ""
	}
	return " [directory missing]"
}

func writeRefs(b *strings.Builder, title string, refs []dto.WineRef) {
	fmt.Fprintf(b, "\n%s (%d)\n", title, len(refs))
	for _, r := range refs {
		fmt.Fprintf(b, "  #%d %s %q\n", r.ID, r.Name, r.PdfFile)
	}
}

func writeNames(b *strings.Builder, title string, names []string) {
	fmt.Fprintf(b, "\n%s (%d)\n", title, len(names))
	for _, n := range names {
		fmt.Fprintf(b, "  %s\n", n)
	}
}

func writeTable(b *strings.Builder, title string, rows []dto.FrequencyRow) {
	fmt.Fprintf(b, "\n%s\n", title)
	for _, row := range rows {
		fmt.Fprintf(b, "  %-24s %d\n", row.Label, row.Count)
	}
}
