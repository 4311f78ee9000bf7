// Flat-row interchange and the session merge algorithm.
// See docs/ARCHITECTURE.md § Flat Interchange.
package bank

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/keepsake/pkg/types"
)

// csvHeader is the column order of the canonical flat shape.
var csvHeader = []string{"session_id", "title", "guidance", "question", "word_target"}

// MergeSessions groups flat rows into sessions. For each session id the
// title, guidance, and word target come from the first row with a
// non-empty value (defaulting to "Session {id}", "", and the standard
// word target); questions collect all non-empty question cells in row
// order. Sessions with zero resulting questions are dropped, and the
// result is sorted ascending by id.
//
// The merge is pure and deterministic: the same rows always produce the
// same sessions, so it can be re-run on unchanged input at any time.
func MergeSessions(rows []types.FlatRow) []types.Session {
	byID := make(map[int]*types.Session)
	var order []int

	for _, row := range rows {
		s, ok := byID[row.SessionID]
		if !ok {
			s = &types.Session{ID: row.SessionID}
			byID[row.SessionID] = s
			order = append(order, row.SessionID)
		}
		if s.Title == "" && row.Title != "" {
			s.Title = row.Title
		}
		if s.Guidance == "" && row.Guidance != "" {
			s.Guidance = row.Guidance
		}
		if s.WordTarget == 0 && row.WordTarget != 0 {
			s.WordTarget = row.WordTarget
		}
		if row.Question != "" {
			s.Questions = append(s.Questions, row.Question)
		}
	}

	var out []types.Session
	for _, id := range order {
		s := byID[id]
		if len(s.Questions) == 0 {
			continue
		}
		if s.Title == "" {
			s.Title = fmt.Sprintf("Session %d", id)
		}
		if s.WordTarget == 0 {
			s.WordTarget = types.DefaultWordTarget
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FlattenSessions converts sessions to flat rows, the inverse of
// MergeSessions. Title, guidance, and word target appear only on the
// first row of each session's group and are zero-valued thereafter.
func FlattenSessions(sessions []types.Session) []types.FlatRow {
	var rows []types.FlatRow
	for _, s := range sessions {
		for i, q := range s.Questions {
			row := types.FlatRow{SessionID: s.ID, Question: q}
			if i == 0 {
				row.Title = s.Title
				row.Guidance = s.Guidance
				row.WordTarget = s.WordTarget
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// ParseFlatCSV reads flat rows from CSV data. A leading header row is
// recognized and skipped. Word targets that are empty or zero stay zero
// and pick up the default during merge.
func ParseFlatCSV(data []byte) ([]types.FlatRow, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(csvHeader)

	var rows []types.FlatRow
	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing flat csv: %w", err)
		}
		if first {
			first = false
			if strings.EqualFold(rec[0], csvHeader[0]) {
				continue
			}
		}
		id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("parsing session id %q: %w", rec[0], err)
		}
		target := 0
		if t := strings.TrimSpace(rec[4]); t != "" {
			target, err = strconv.Atoi(t)
			if err != nil {
				return nil, fmt.Errorf("parsing word target %q: %w", rec[4], err)
			}
		}
		rows = append(rows, types.FlatRow{
			SessionID:  id,
			Title:      rec[1],
			Guidance:   rec[2],
			Question:   rec[3],
			WordTarget: target,
		})
	}
	return rows, nil
}

// WriteFlatCSV renders flat rows as CSV with a header row. Zero word
// targets render as empty cells so the round trip through ParseFlatCSV
// preserves the rows exactly.
func WriteFlatCSV(rows []types.FlatRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		target := ""
		if row.WordTarget != 0 {
			target = strconv.Itoa(row.WordTarget)
		}
		rec := []string{
			strconv.Itoa(row.SessionID),
			row.Title,
			row.Guidance,
			row.Question,
			target,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
