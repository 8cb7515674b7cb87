// Package mixmod parses MIXMOD cluster assignment tables.
package mixmod

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mash-project/hspace/internal/heuristic"
)

// tableMarker starts the header line of a MIXMOD table.
const tableMarker = "<CONSTRUCT-TABLE>"

// Cluster is one cluster and its member heuristics, sorted by name.
type Cluster struct {
	ID         int      `json:"id"`
	Heuristics []string `json:"heuristics"`
}

// ParseFile parses the table at path.
func ParseFile(path string) ([]Cluster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mixmod table: %w", err)
	}
	defer f.Close()

	clusters, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clusters, nil
}

// Parse reads "<heuristic> <cluster-id>" lines. Header and empty lines are
// skipped, heuristic names are lowercased, and clusters come back ordered
// by id.
func Parse(r io.Reader) ([]Cluster, error) {
	members := make(map[int][]string)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, tableMarker) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected heuristic and cluster id, got %q", lineNum, line)
		}

		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid cluster id %q: %w", lineNum, fields[1], err)
		}

		members[id] = append(members[id], heuristic.Normalize(fields[0]))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mixmod table: %w", err)
	}

	clusters := make([]Cluster, 0, len(members))
	for id, hs := range members {
		sort.Strings(hs)
		clusters = append(clusters, Cluster{ID: id, Heuristics: hs})
	}
	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].ID < clusters[j].ID
	})

	return clusters, nil
}

// Assignments maps each heuristic to its cluster id.
func Assignments(clusters []Cluster) map[string]int {
	out := make(map[string]int)
	for _, c := range clusters {
		for _, h := range c.Heuristics {
			out[h] = c.ID
		}
	}
	return out
}
