// Command ehserver loads a ranked edge hierarchy from disk and serves
// distance queries over HTTP. Flag wiring and server shape mirror the
// teacher's cmd/server.
package main

import (
	"flag"
	"log"
	"time"

	"edgehierarchy/pkg/api"
	"edgehierarchy/pkg/graph"
	"edgehierarchy/pkg/query"
)

func main() {
	rankedPath := flag.String("ranked", "", "Path to a ranked-graph text file written by ehbench")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	forwardStalling := flag.Bool("forward-stalling", true, "Enable forward (actual[]-distance) pre-stalling during queries")
	backwardStalling := flag.Bool("backward-stalling", true, "Enable backward stall-on-demand-at-pop-time during queries")
	corsOrigin := flag.String("cors-origin", "", "Access-Control-Allow-Origin value (empty disables CORS headers)")
	flag.Parse()

	if *rankedPath == "" {
		log.Fatal("Usage: ehserver --ranked graph.ranked [--addr :8080]")
	}

	start := time.Now()
	log.Printf("Loading ranked graph from %s...", *rankedPath)
	hg, err := graph.ReadRankedFile(*rankedPath)
	if err != nil {
		log.Fatalf("Failed to read ranked graph: %v", err)
	}
	numNodes := hg.NumNodes()
	numEdges := int(hg.NumEdges())
	log.Printf("Loaded %d nodes, %d edges", numNodes, numEdges)

	hg.SortEdges()
	order := graph.ComputeDFSOrder(hg)
	frozen := graph.Freeze(hg, order)
	log.Printf("Ready to serve in %s.", time.Since(start).Round(time.Millisecond))

	distancer := query.NewPooledDistancer(frozen, *forwardStalling, *backwardStalling)

	stats := api.StatsResponse{
		NumNodes:    numNodes,
		NumFwdEdges: numEdges,
		NumBwdEdges: numEdges,
	}
	handlers := api.NewHandlers(distancer, numNodes, stats)

	cfg := api.DefaultConfig(*addr)
	cfg.CORSOrigin = *corsOrigin
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
