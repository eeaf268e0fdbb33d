package main

import (
	"fmt"
	"strings"

	"github.com/nishad/drugrake/internal/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Relationship graphs in Graphviz DOT",
	Long: `Build relationship graphs from the extracted tables and print them in
Graphviz DOT format. Pipe the output to "dot -Tsvg" to render.`,
}

var graphSynonymsCmd = &cobra.Command{
	Use:   "synonyms <drugbank-id>",
	Short: "Star graph of a drug and its synonyms",
	Example: `  drugrake graph synonyms DB00001 | dot -Tpng -o synonyms.png`,
	Args:    cobra.ExactArgs(1),
	RunE:    runGraphSynonyms,
}

var graphInteractionsCmd = &cobra.Command{
	Use:   "interactions [drugbank-id]",
	Short: "Drug interaction network",
	Long: `Print the undirected drug interaction network as DOT. With a drug id
only that drug's interaction partners are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraphInteractions,
}

var graphOutput string

func init() {
	graphCmd.PersistentFlags().StringVarP(&graphOutput, "output", "o", "", "Write DOT to file instead of stdout")

	graphCmd.AddCommand(graphSynonymsCmd)
	graphCmd.AddCommand(graphInteractionsCmd)
}

func runGraphSynonyms(cmd *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}

	g, err := graph.SynonymGraph(args[0], tables.Synonyms)
	if err != nil {
		return err
	}
	if g.Order() == 1 {
		printWarning("%s has no synonyms", args[0])
	}
	return writeDOT(g)
}

func runGraphInteractions(cmd *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}

	g, err := graph.InteractionNetwork(tables.Interactions)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		neighbors := g.Neighbors(args[0])
		if len(neighbors) == 0 {
			printWarning("%s has no interactions", args[0])
			return nil
		}
		fmt.Printf("%s interacts with %d drugs:\n", args[0], len(neighbors))
		fmt.Println(strings.Join(neighbors, "\n"))
		return nil
	}

	printDebug("interaction network: %d drugs, %d edges", g.Order(), g.Size())
	return writeDOT(g)
}

func writeDOT(g *graph.Graph) error {
	w, closeFn, err := outputWriter(graphOutput)
	if err != nil {
		return err
	}
	if err := g.WriteDOT(w); err != nil {
		discardClose(closeFn, graphOutput)
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}
	if graphOutput != "" {
		printSuccess("Wrote %s", graphOutput)
	}
	return nil
}
