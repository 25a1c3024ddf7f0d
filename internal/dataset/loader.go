package dataset

import (
	"fmt"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Entry is one interview listed in a batch manifest.
type Entry struct {
	Row      int    `json:"row"`
	ID       string `json:"id,omitempty"`
	AudioURL string `json:"audio_url"`
	Filename string `json:"filename"`
}

// Load reads the first sheet of an xlsx manifest. Columns are found by header
// heuristics; rows without an http(s) audio URL are skipped.
func Load(file string) ([]Entry, error) {
	f, err := excelize.OpenFile(file)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return read(f)
}

func read(f *excelize.File) ([]Entry, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	audioIdx, nameIdx, idIdx := -1, -1, -1
	for i, h := range rows[0] {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "audio") || strings.Contains(l, "url") || strings.Contains(l, "link") || strings.Contains(l, "grabación"):
			if audioIdx == -1 {
				audioIdx = i
			}
		case strings.Contains(l, "file") || strings.Contains(l, "archivo") || strings.Contains(l, "nombre"):
			if nameIdx == -1 {
				nameIdx = i
			}
		case l == "id" || strings.Contains(l, "interview id") || strings.Contains(l, "entrevista"):
			if idIdx == -1 {
				idIdx = i
			}
		}
	}
	if audioIdx == -1 {
		return nil, fmt.Errorf("no audio url column in header %q", rows[0])
	}

	cell := func(r []string, i int) string {
		if i >= 0 && i < len(r) {
			return strings.TrimSpace(r[i])
		}
		return ""
	}
	var out []Entry
	for i, r := range rows[1:] {
		e := Entry{
			Row:      i + 2,
			ID:       cell(r, idIdx),
			AudioURL: cell(r, audioIdx),
			Filename: cell(r, nameIdx),
		}
		l := strings.ToLower(e.AudioURL)
		if !strings.HasPrefix(l, "http://") && !strings.HasPrefix(l, "https://") {
			continue
		}
		if e.Filename == "" {
			e.Filename = path.Base(strings.SplitN(e.AudioURL, "?", 2)[0])
		}
		out = append(out, e)
	}
	return out, nil
}
