package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aryarajalves/zapflow/pkg/domain"
	"github.com/aryarajalves/zapflow/pkg/flow"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a funnel graph JSON file",
	Long:  `Reads a funnel definition (or bare flow graph) from a JSON file and reports every structural issue found.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading file: %v\n", err)
			os.Exit(1)
		}

		graph, err := decodeGraph(data)
		if err != nil {
			fmt.Printf("Error parsing graph: %v\n", err)
			os.Exit(1)
		}

		issues := flow.Validate(graph)
		if len(issues) == 0 {
			fmt.Println("Graph is valid.")
			return
		}

		for _, issue := range issues {
			fmt.Println(issue.String())
		}
		if flow.BlocksPersist(issues) {
			fmt.Println("Graph cannot be persisted until the issues above are resolved.")
			os.Exit(1)
		}
	},
}

// decodeGraph accepts either a full FunnelDefinition or a bare FlowGraph.
func decodeGraph(data []byte) (*domain.FlowGraph, error) {
	var funnel domain.FunnelDefinition
	if err := json.Unmarshal(data, &funnel); err == nil && len(funnel.Graph.Nodes) > 0 {
		return &funnel.Graph, nil
	}

	var graph domain.FlowGraph
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, err
	}
	return &graph, nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
