/*
Package protocompat computes how compatible two communicating protocols are.

Each protocol is a finite graph of states linked by message transitions: emissions (!msg),
receptions (?msg) and internal tau moves. The engine scores every pair of states across the
two graphs, round after round, and returns one matrix per round. A score close to 1 means the
two states can follow each other's messages; a score close to 0 means they cannot.

# Concept

Round 0 starts from the uniform matrix (every pair equals 1). Each later round scores a pair
from three ingredients:

  - Label compatibility of the transitions: same name, opposite direction, similar parameters.
  - Observational compatibility: how well the outgoing (or incoming) transitions of one state
    are matched by the other, weighted by the previous round.
  - The nature of the two states (initial, normal, final).

The new score is the average of the previous one and the state compatibility of the round,
rounded to 3 decimals.

# Usage

Descriptions are JSON or YAML files; the Analyzer loads them, runs the engine and, when a
ResultStore is configured, persists the run.

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/protocompat"
	)

	func main() {
		a, err := protocompat.New()
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		client, err := a.Load(ctx, "client.json")
		if err != nil {
			log.Fatal(err)
		}
		server, err := a.Load(ctx, "server.yaml")
		if err != nil {
			log.Fatal(err)
		}

		run, err := a.Compute(ctx, client, server, 2)
		if err != nil {
			log.Fatal(err)
		}
		for i, m := range run.Matrices {
			fmt.Println("round", i, m.Rows(), m.Cols())
		}
	}

Graphs can also be built in Go with the pkg/dsl builder.
*/
package protocompat
