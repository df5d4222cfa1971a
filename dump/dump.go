package dump

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/katalvlaran/critrace/detector"
	"github.com/katalvlaran/critrace/simplex"
	"gopkg.in/yaml.v3"
)

// WriteComponents writes one line per component to w: rank-ordered
// (by canonical id), space-separated canonical simplex id strings
// (spec.md §6 "one component per line, space-separated canonical simplex
// ids, rank-ordered").
func WriteComponents(w io.Writer, components [][]simplex.ID) error {
	bw := bufio.NewWriter(w)

	for _, comp := range components {
		sorted := append([]simplex.ID(nil), comp...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

		for i, id := range sorted {
			if i > 0 {
				if _, err := bw.WriteString(" "); err != nil {
					return fmt.Errorf("dump: write separator: %w", err)
				}
			}
			if _, err := bw.WriteString(id.String()); err != nil {
				return fmt.Errorf("dump: write id: %w", err)
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return fmt.Errorf("dump: write newline: %w", err)
		}
	}

	return bw.Flush()
}

// intersectionRecord is the field-by-field YAML projection of a single
// detector.Intersection, named to match spec.md §3's attribute list
// exactly (eid, x, val, corner, related).
type intersectionRecord struct {
	EID     string    `yaml:"eid"`
	X       []float64 `yaml:"x"`
	Val     float64   `yaml:"val"`
	Corner  []int32   `yaml:"corner"`
	Related []string  `yaml:"related"`
}

// WriteIntersections writes intersections to w as YAML, one record per
// entry (spec.md §6 "structured dump of intersections for debugging
// (field-by-field serialization of eid, x, val, corner, related)"),
// ordered by canonical id for deterministic output.
func WriteIntersections(w io.Writer, intersections map[simplex.ID]*detector.Intersection) error {
	ids := make([]simplex.ID, 0, len(intersections))
	for id := range intersections {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	records := make([]intersectionRecord, 0, len(ids))
	for _, id := range ids {
		isec := intersections[id]

		related := make([]simplex.ID, 0, len(isec.Related))
		for r := range isec.Related {
			related = append(related, r)
		}
		sort.Slice(related, func(i, j int) bool { return related[i].Less(related[j]) })

		relatedStr := make([]string, len(related))
		for i, r := range related {
			relatedStr[i] = r.String()
		}

		records = append(records, intersectionRecord{
			EID:     id.String(),
			X:       isec.X,
			Val:     isec.Val,
			Corner:  isec.Corner,
			Related: relatedStr,
		})
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()

	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("dump: encode intersections: %w", err)
	}

	return nil
}
