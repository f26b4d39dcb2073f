// Package ledger records the outcome of every pairwise comparison in a
// tournament.
//
// A [Ledger] keeps two synchronised views of the same evidence: an N×N win
// matrix where wins[i][j] counts how often item i beat item j, and a weighted
// directed graph with an edge i→j whose weight equals wins[i][j]. The graph is
// a gonum [simple.WeightedDirectedGraph] so strategies and aggregators can run
// gonum's graph algorithms (strongly connected components, PageRank) on it
// directly.
//
// The simulation loop is the only writer. [Ledger.Graph] and [Ledger.Matrix]
// are read views; the matrix is copied, the graph is exposed through the
// read-only [graph.WeightedDirected] interface.
//
// # Rendering
//
// [ToDOT] renders the win graph as Graphviz DOT with edge labels showing win
// counts, and [RenderSVG] turns that DOT into SVG through go-graphviz.
//
// [simple.WeightedDirectedGraph]: https://pkg.go.dev/gonum.org/v1/gonum/graph/simple#WeightedDirectedGraph
// [graph.WeightedDirected]: https://pkg.go.dev/gonum.org/v1/gonum/graph#WeightedDirected
package ledger
