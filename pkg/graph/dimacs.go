package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadDimacs parses the DIMACS shortest-path challenge text format: a
// header line "p sp N M" giving vertex/edge counts, followed by "a u v w"
// arc lines using 1-based node ids. Duplicate arcs are dropped, matching
// original_source/lib/dimacsGraphReader.h's hasEdge guard. Any other line
// (comments starting with "c", blank lines) is skipped.
func ReadDimacs(r io.Reader) (*CSRGraph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var numNodes, numEdges uint32
	haveHeader := false
	seen := make(map[uint64]bool)
	edges := make([]Edge, 0)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			continue
		case 'p':
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "sp" {
				return nil, fmt.Errorf("graph: dimacs line %d: malformed header %q", lineNo, line)
			}
			n, err := strconv.ParseUint(fields[2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("graph: dimacs line %d: %w", lineNo, err)
			}
			m, err := strconv.ParseUint(fields[3], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("graph: dimacs line %d: %w", lineNo, err)
			}
			numNodes = uint32(n)
			numEdges = uint32(m)
			haveHeader = true
		case 'a':
			if !haveHeader {
				return nil, fmt.Errorf("graph: dimacs line %d: arc before header", lineNo)
			}
			fields := strings.Fields(line)
			if len(fields) != 4 {
				return nil, fmt.Errorf("graph: dimacs line %d: malformed arc %q", lineNo, line)
			}
			u, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("graph: dimacs line %d: %w", lineNo, err)
			}
			v, err := strconv.ParseUint(fields[2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("graph: dimacs line %d: %w", lineNo, err)
			}
			w, err := strconv.ParseUint(fields[3], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("graph: dimacs line %d: %w", lineNo, err)
			}
			if u == 0 || v == 0 || u > uint64(numNodes) || v > uint64(numNodes) {
				return nil, fmt.Errorf("graph: dimacs line %d: arc endpoint out of range", lineNo)
			}
			from, to := uint32(u-1), uint32(v-1)
			k := uint64(from)<<32 | uint64(to)
			if seen[k] {
				continue
			}
			seen[k] = true
			edges = append(edges, Edge{From: from, To: to, Weight: uint32(w)})
		default:
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("graph: dimacs: %w", err)
	}
	if !haveHeader {
		return nil, fmt.Errorf("graph: dimacs: missing \"p sp\" header")
	}
	_ = numEdges // informational only; real edge count is len(edges) post-dedupe

	return NewCSRFromEdges(numNodes, edges), nil
}
