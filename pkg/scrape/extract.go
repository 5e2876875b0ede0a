package scrape

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// barDateLayout is the calendar format used by the source's OHLCV table.
const barDateLayout = "02.01.2006"

// barColumnCount is the minimum cells a table row needs: date, four prices,
// volume.
const barColumnCount = 6

// ExtractQuotes scans raw page content for each configured pair pattern and
// parses one value per pattern found. Extraction is pure: absence of a
// pattern yields no candidate for that pair, never an error, and the whole
// call returns an empty slice when the page structure cannot be read at all.
func ExtractQuotes(content []byte, pairs map[string]PairPattern) []QuoteCandidate {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil
	}

	ids := make([]string, 0, len(pairs))
	for id := range pairs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	candidates := make([]QuoteCandidate, 0, len(ids))
	for _, id := range ids {
		pattern := pairs[id]
		needle := fmt.Sprintf("from=%s&to=%s", pattern.From, pattern.To)

		var text string
		doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, _ := sel.Attr("href")
			if strings.Contains(href, needle) {
				text = strings.TrimSpace(sel.Text())
				return false
			}
			return true
		})
		if text == "" {
			continue
		}
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			continue
		}
		candidates = append(candidates, QuoteCandidate{PairID: id, Value: value})
	}
	return candidates
}

// ExtractBars locates the first table in the content and parses up to window
// data rows after the header. A row with too few columns or an unparseable
// field is dropped; extraction continues with the next row.
func ExtractBars(content []byte, window int) []BarCandidate {
	if window <= 0 {
		window = defaultBarWindow
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil
	}

	candidates := make([]BarCandidate, 0, window)
	table.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if len(candidates) >= window {
			return false
		}
		cells := row.Find("td")
		if cells.Length() < barColumnCount {
			// Header rows and separators fall out here.
			return true
		}
		bar, ok := parseBarRow(cells)
		if !ok {
			return true
		}
		candidates = append(candidates, bar)
		return true
	})
	return candidates
}

func parseBarRow(cells *goquery.Selection) (BarCandidate, bool) {
	fields := make([]string, 0, barColumnCount)
	cells.Each(func(i int, cell *goquery.Selection) {
		if i < barColumnCount {
			fields = append(fields, strings.TrimSpace(cell.Text()))
		}
	})

	date, err := time.ParseInLocation(barDateLayout, fields[0], time.UTC)
	if err != nil {
		return BarCandidate{}, false
	}

	prices := make([]float64, 0, 4)
	for _, raw := range fields[1:5] {
		v, err := parseDecimal(raw)
		if err != nil {
			return BarCandidate{}, false
		}
		prices = append(prices, v)
	}

	volume, err := parseVolume(fields[5])
	if err != nil {
		return BarCandidate{}, false
	}

	return BarCandidate{
		Date:   date,
		Open:   prices[0],
		High:   prices[1],
		Low:    prices[2],
		Close:  prices[3],
		Volume: volume,
	}, true
}

// parseDecimal handles the source's pt-BR number format: "." as thousands
// separator, "," as decimal point. Plain dot-decimal input passes through.
func parseDecimal(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("scrape: empty numeric field")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}

func parseVolume(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("scrape: negative volume %d", v)
	}
	return v, nil
}
