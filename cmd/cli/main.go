package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/pocketbank/transfercore/internal/adapter/http/dto"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "transfercore-cli",
		Short: "Transfercore CLI tool",
		Long:  `A command line interface for interacting with the transfercore API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the transfercore API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	validateCmd := &cobra.Command{
		Use:   "validate <amount>",
		Short: "Run the instant validation check for an amount",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			validateAmount(args[0])
		},
	}

	var sendName, sendAccount, sendNote string
	sendCmd := &cobra.Command{
		Use:   "send <amount>",
		Short: "Execute a transfer",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			sendTransfer(args[0], sendName, sendAccount, sendNote)
		},
	}
	sendCmd.Flags().StringVar(&sendName, "to", "", "Recipient name")
	sendCmd.Flags().StringVar(&sendAccount, "account", "", "Recipient account number")
	sendCmd.Flags().StringVar(&sendNote, "note", "", "Transfer note")

	var historyStatus string
	var historyLimit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent transactions",
		Run: func(cmd *cobra.Command, args []string) {
			listHistory(historyStatus, historyLimit)
		},
	}
	historyCmd.Flags().StringVar(&historyStatus, "status", "", "Filter by status (completed|failed)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Max transactions to list")

	limitsCmd := &cobra.Command{
		Use:   "limits",
		Short: "Show the current transfer limits",
		Run: func(cmd *cobra.Command, args []string) {
			showLimits()
		},
	}

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			listAccounts()
		},
	}

	rootCmd.AddCommand(validateCmd, sendCmd, historyCmd, limitsCmd, accountsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func validateAmount(amount string) {
	body := fmt.Sprintf(`{"amount":%q}`, amount)
	data := post("/api/v1/transfers/validate", body, "")

	var result dto.ValidationResultResponse
	mustUnmarshal(data, &result)

	if result.IsValid {
		fmt.Println("Amount is valid")
	} else {
		fmt.Println("Amount is NOT valid")
	}
	for _, e := range result.Errors {
		fmt.Printf("  error [%s]: %s\n", e.Kind, e.Message)
	}
	for _, w := range result.Warnings {
		fmt.Printf("  warning [%s]: %s\n", w.Type, w.Message)
	}
}

func sendTransfer(amount, name, account, note string) {
	payload := map[string]any{
		"amount": amount,
		"recipient": map[string]string{
			"name":           name,
			"account_number": account,
		},
	}
	if note != "" {
		payload["note"] = note
	}
	body, _ := json.Marshal(payload)

	// One key per invocation: rerunning the command is a new transfer,
	// but transport-level retries of this request are not.
	data := post("/api/v1/transfers", string(body), ulid.Make().String())

	var tx dto.TransactionResponse
	mustUnmarshal(data, &tx)

	fmt.Printf("Transfer %s: %s\n", tx.Status, tx.ID)
	fmt.Printf("  amount:        %s\n", tx.Amount)
	fmt.Printf("  balance after: %s\n", tx.BalanceAfter)
}

func listHistory(status string, limit int) {
	path := fmt.Sprintf("/api/v1/transactions?limit=%d", limit)
	if status != "" {
		path += "&status=" + status
	}
	data := get(path)

	var txs []dto.TransactionResponse
	mustUnmarshal(data, &txs)

	for _, tx := range txs {
		line := fmt.Sprintf("%s  %-9s  %10s  -> %s", tx.CreatedAt.Format(time.RFC3339), tx.Status, tx.Amount, tx.Recipient.Name)
		if tx.FailureKind != "" {
			line += "  (" + tx.FailureKind + ")"
		}
		fmt.Println(line)
	}
}

func showLimits() {
	data := get("/api/v1/limits")

	var limits dto.LimitsResponse
	mustUnmarshal(data, &limits)

	fmt.Printf("Daily:   %s / %s used", limits.Daily.Used, limits.Daily.Limit)
	if limits.Daily.Approaching {
		fmt.Print("  [approaching]")
	}
	fmt.Println()

	fmt.Printf("Monthly: %s / %s used", limits.Monthly.Used, limits.Monthly.Limit)
	if limits.Monthly.Approaching {
		fmt.Print("  [approaching]")
	}
	fmt.Println()

	fmt.Printf("Per transaction: %s\n", limits.PerTransaction)
}

func listAccounts() {
	data := get("/api/v1/accounts")

	var accounts []dto.AccountResponse
	mustUnmarshal(data, &accounts)

	for _, acc := range accounts {
		marker := " "
		if acc.Default {
			marker = "*"
		}
		fmt.Printf("%s %s  %-20s  %s\n", marker, acc.ID, acc.Name, acc.Balance)
	}
}

func get(path string) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	return readOK(resp)
}

func post(path, body, idempotencyKey string) []byte {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader([]byte(body)))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	return readOK(resp)
}

func readOK(resp *http.Response) []byte {
	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr dto.ErrorResponse
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error != "" {
			fmt.Printf("Request failed (Status: %d): %s\n", resp.StatusCode, apiErr.Error)
			if apiErr.Kind != "" {
				fmt.Printf("  kind: %s\n", apiErr.Kind)
			}
			if apiErr.Message != "" {
				fmt.Printf("  %s\n", apiErr.Message)
			}
		} else {
			fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(data))
		}
		os.Exit(1)
	}

	return data
}

func mustUnmarshal(data []byte, v any) {
	if err := json.Unmarshal(data, &v); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
}
