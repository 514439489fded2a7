package threatpage

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/threat-log-analyzer/internal/entity"
	"github.com/user/threat-log-analyzer/internal/repository"
)

// ExtractThreatTable parses an HTML document and reads the first table on it.
// The first row is treated as a header and skipped. Every other row with at
// least two data cells contributes cell0 -> cell1, later rows overwriting
// earlier ones for the same address. A page without a table yields an empty
// mapping.
func ExtractThreatTable(r io.Reader) (entity.ThreatMapping, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrExtractionFailed, err)
	}

	threats := make(entity.ThreatMapping)
	table := doc.Find("table").First()
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		threats[cellText(cells.Eq(0))] = cellText(cells.Eq(1))
	})

	return threats, nil
}

// cellText returns the rendered text of a cell, with whitespace runs
// collapsed to single spaces and the ends trimmed.
func cellText(cell *goquery.Selection) string {
	return strings.Join(strings.Fields(cell.Text()), " ")
}

// ExtractThreatTableFromHTML is ExtractThreatTable for an in-memory document.
func ExtractThreatTableFromHTML(html string) (entity.ThreatMapping, error) {
	return ExtractThreatTable(strings.NewReader(html))
}
