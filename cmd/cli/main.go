// sarctl is a small CLI for the SAR API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sarctl",
		Short: "SAR service CLI tool",
		Long:  `A command line interface for interacting with the Suspicious Activity Report API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the SAR API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		createCmd(),
		getCmd(),
		listCmd(),
		submitCmd(),
		fileCmd(),
		deleteCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createCmd() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a SAR from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(fromFile)
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}

			return doRequest(http.MethodPost, "/api/v1/sars/", payload, http.StatusCreated)
		},
	}

	cmd.Flags().StringVarP(&fromFile, "file", "f", "", "Path to the SAR payload JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a SAR by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodGet, "/api/v1/sars/"+args[0], nil, http.StatusOK)
		},
	}
}

func listCmd() *cobra.Command {
	var (
		status        string
		customerName  string
		accountNumber string
		limit         int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List SARs",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			if status != "" {
				params.Set("status", status)
			}
			if customerName != "" {
				params.Set("customerName", customerName)
			}
			if accountNumber != "" {
				params.Set("accountNumber", accountNumber)
			}
			if limit > 0 {
				params.Set("limit", strconv.Itoa(limit))
			}

			path := "/api/v1/sars/"
			if encoded := params.Encode(); encoded != "" {
				path += "?" + encoded
			}

			return doRequest(http.MethodGet, path, nil, http.StatusOK)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (Draft, Submitted, Filed)")
	cmd.Flags().StringVar(&customerName, "customer-name", "", "Filter by customer name substring")
	cmd.Flags().StringVar(&accountNumber, "account-number", "", "Filter by account number")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (max 100)")

	return cmd
}

func submitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id>",
		Short: "Submit a draft SAR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodPost, "/api/v1/sars/"+args[0]+"/submit", nil, http.StatusOK)
		},
	}
}

func fileCmd() *cobra.Command {
	var reference string

	cmd := &cobra.Command{
		Use:   "file <id>",
		Short: "File a submitted SAR under a filing reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := json.Marshal(map[string]string{"filingReference": reference})
			if err != nil {
				return err
			}

			return doRequest(http.MethodPost, "/api/v1/sars/"+args[0]+"/file", payload, http.StatusOK)
		},
	}

	cmd.Flags().StringVarP(&reference, "reference", "r", "", "Regulator filing reference")
	_ = cmd.MarkFlagRequired("reference")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a SAR that has not been filed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodDelete, "/api/v1/sars/"+args[0], nil, http.StatusOK)
		},
	}
}

// doRequest sends the request and pretty-prints the response envelope.
func doRequest(method, path string, body []byte, wantStatus int) error {
	client := &http.Client{Timeout: timeout}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var decoded any
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		fmt.Println(string(respBody))
	} else {
		printJSON(decoded)
	}

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
