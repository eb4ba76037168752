package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "moneta-cli",
		Short: "Moneta CLI tool",
		Long:  `A command line interface for interacting with the Moneta API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Moneta API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	accountsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Run: func(cmd *cobra.Command, args []string) {
			listAccounts()
		},
	}

	accountsVerifyCmd := &cobra.Command{
		Use:   "verify <account-id>",
		Short: "Replay an account's operation log and check it against the stored balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			verifyAccount(args[0])
		},
	}

	accountsCmd.AddCommand(accountsListCmd, accountsVerifyCmd)

	var (
		historyYear  int
		historyMonth int
	)
	historyCmd := &cobra.Command{
		Use:   "history <account-id>",
		Short: "Fetch the reconstructed balance series for a month",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fetchHistory(args[0], historyYear, historyMonth)
		},
	}
	historyCmd.Flags().IntVar(&historyYear, "year", 0, "Year (defaults to current)")
	historyCmd.Flags().IntVar(&historyMonth, "month", 0, "Month 1..12 (defaults to current)")

	rootCmd.AddCommand(accountsCmd, historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) ([]byte, int) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return body, resp.StatusCode
}

func listAccounts() {
	body, status := get("/api/v1/accounts")
	if status != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result struct {
		Accounts []struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			Currency  string `json:"currency"`
			Formatted string `json:"formatted"`
			Hidden    bool   `json:"hidden"`
		} `json:"accounts"`
		Total int64 `json:"total"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for _, a := range result.Accounts {
		marker := " "
		if a.Hidden {
			marker = "h"
		}
		fmt.Printf("%s %-26s  %-24s  %s\n", marker, a.ID, a.Name, a.Formatted)
	}
	fmt.Printf("Total: %d\n", result.Total)
}

func verifyAccount(accountID string) {
	body, status := get("/api/v1/accounts/" + accountID + "/verify")
	if status != http.StatusOK {
		fmt.Printf("Verification FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result struct {
		AccountID  string `json:"account_id"`
		Consistent bool   `json:"consistent"`
		Drift      string `json:"drift"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if !result.Consistent {
		fmt.Printf("Verification FAILED\nAccount: %s\nDrift: %s\n", result.AccountID, result.Drift)
		os.Exit(1)
	}

	fmt.Printf("Verification PASSED\nAccount: %s\nDrift: %s\n", result.AccountID, result.Drift)
}

func fetchHistory(accountID string, year, month int) {
	now := time.Now().UTC()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}

	path := fmt.Sprintf("/api/v1/accounts/%s/history?year=%d&month=%d", accountID, year, month)
	body, status := get(path)
	if status != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result struct {
		Year   int `json:"year"`
		Month  int `json:"month"`
		Actual []struct {
			Day     int    `json:"day"`
			Balance string `json:"balance"`
		} `json:"actual"`
		Forecast []struct {
			Day     int    `json:"day"`
			Balance string `json:"balance"`
		} `json:"forecast"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("History for %04d-%02d\n", result.Year, result.Month)
	for _, p := range result.Actual {
		fmt.Printf("  day %2d  %s\n", p.Day, p.Balance)
	}
	if len(result.Forecast) > 0 {
		fmt.Println("Forecast:")
		for _, p := range result.Forecast {
			fmt.Printf("  day %2d  %s\n", p.Day, p.Balance)
		}
	}
}
