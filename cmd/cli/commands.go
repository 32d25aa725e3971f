package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	categoryFilter string
	perTeam        int
	count          int
)

func init() {
	teamsCmd.Flags().StringVar(&categoryFilter, "category", "", "Only list teams of this category")
	groupsCmd.Flags().StringVar(&categoryFilter, "category", "", "Only list groups of this category")
	generateCmd.Flags().IntVar(&perTeam, "per-team", 0, "Matches per team; 0 plays a full round robin")
	qualifiersCmd.Flags().IntVar(&count, "count", 8, "Number of qualifiers")
	seedBracketCmd.Flags().IntVar(&count, "count", 8, "Bracket size (4, 8 or 16)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(qualifiersCmd)
	rootCmd.AddCommand(bracketCmd)
	rootCmd.AddCommand(seedBracketCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/categories", nil)
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the registered teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, withCategory("/api/teams"), nil)
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the groups and their teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, withCategory("/api/groups"), nil)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate <groupID>",
	Short: "Generate the pending matches of a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{"mode": "round_robin"}
		if perTeam > 0 {
			body = map[string]any{"mode": "capped", "per_team": perTeam}
		}
		return performRequest(http.MethodPost, "/api/groups/"+url.PathEscape(args[0])+"/generate", body)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings <groupID>",
	Short: "Show the standings of a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/groups/"+url.PathEscape(args[0])+"/standings", nil)
	},
}

var qualifiersCmd = &cobra.Command{
	Use:   "qualifiers <category>",
	Short: "Show the teams that qualify for the knockout stage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/categories/"+url.PathEscape(args[0])+"/qualifiers?count="+strconv.Itoa(count), nil)
	},
}

var bracketCmd = &cobra.Command{
	Use:   "bracket <category>",
	Short: "Show the knockout bracket of a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/categories/"+url.PathEscape(args[0])+"/bracket", nil)
	},
}

var seedBracketCmd = &cobra.Command{
	Use:   "seed-bracket <category>",
	Short: "Seed the knockout bracket from the group standings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/categories/"+url.PathEscape(args[0])+"/bracket", map[string]any{"count": count})
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

func withCategory(endpoint string) string {
	if categoryFilter == "" {
		return endpoint
	}
	return endpoint + "?category=" + url.QueryEscape(categoryFilter)
}

func performRequest(method, endpoint string, payload any) error {
	target := host + endpoint
	fmt.Printf("Making request to %s\n", target)

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
