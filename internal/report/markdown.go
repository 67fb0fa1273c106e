// Package report renders ranked standings as Markdown tables for the
// published regional standings files.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rankforge/standings/internal/region"
	"github.com/rankforge/standings/internal/roster"
)

// column describes one table column: header and markdown alignment marker.
type column struct {
	name  string
	align string
}

var columns = []column{
	{"Standing", "-:"},
	{"Points", "-:"},
	{"Team Name", ":-"},
	{"Roster", ":-"},
}

// WriteGlobal renders the global standings table: every roster holding a
// global rank, in rank order.
func WriteGlobal(w io.Writer, standings []*roster.Roster, date string) error {
	return write(w, standings, date, "Regional Standings", func(r *roster.Roster) (int, bool) {
		return r.GlobalRank, r.GlobalRank != roster.Unranked
	})
}

// WriteRegional renders one region's table using the regional rank sequence.
func WriteRegional(w io.Writer, standings []*roster.Roster, reg region.Region, date string) error {
	title := fmt.Sprintf("Regional Standings for %s", reg)
	return write(w, standings, date, title, func(r *roster.Roster) (int, bool) {
		rank := r.RegionalRank[reg]
		return rank, rank != roster.Unranked
	})
}

func write(w io.Writer, standings []*roster.Roster, date, title string, rankOf func(*roster.Roster) (int, bool)) error {
	if _, err := fmt.Fprintf(w, "### %s as of %s\n\n", title, date); err != nil {
		return err
	}

	headers := make([]string, len(columns))
	aligns := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.name
		aligns[i] = c.align
	}
	fmt.Fprintln(w, markdownRow(headers))
	fmt.Fprintln(w, markdownRow(aligns))

	for _, r := range standings {
		rank, ok := rankOf(r)
		if !ok {
			continue
		}
		row := []string{
			fmt.Sprintf("%d", rank),
			fmt.Sprintf("%d", int(math.Round(r.Rating))),
			r.Name,
			playerList(r),
		}
		if _, err := fmt.Fprintln(w, markdownRow(row)); err != nil {
			return err
		}
	}
	return nil
}

func markdownRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

func playerList(r *roster.Roster) string {
	nicks := make([]string, len(r.Players))
	for i, p := range r.Players {
		nicks[i] = p.Nick
	}
	return strings.Join(nicks, ", ")
}

// DateOfLatest formats the date of the most recent standings-relevant match
// for use in titles and file names. Falls back to the zero date when no
// matches exist.
func DateOfLatest(lastMatchTime int64) string {
	if lastMatchTime <= 0 {
		return "1970-01-01"
	}
	return time.Unix(lastMatchTime, 0).UTC().Format("2006-01-02")
}

// WriteFiles writes one standings file per requested region (plus the global
// file when regions is empty) into dir, named after the original published
// layout: standings_<region>_<date>.md.
func WriteFiles(dir string, standings []*roster.Roster, regions []region.Region, date string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	writeOne := func(name string, render func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		if err := render(f); err != nil {
			return fmt.Errorf("failed to render %s: %w", path, err)
		}
		log.Info().Str("path", path).Msg("standings written")
		return nil
	}

	fileDate := strings.ReplaceAll(date, "-", "_")
	if len(regions) == 0 {
		name := fmt.Sprintf("standings_global_%s.md", fileDate)
		return writeOne(name, func(w io.Writer) error {
			return WriteGlobal(w, standings, date)
		})
	}

	for _, reg := range regions {
		name := fmt.Sprintf("standings_%s_%s.md", strings.ToLower(reg.String()), fileDate)
		if err := writeOne(name, func(w io.Writer) error {
			return WriteRegional(w, standings, reg, date)
		}); err != nil {
			return err
		}
	}
	return nil
}
