package main

import (
	"bytes"
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
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "khata-cli",
		Short: "Khata CLI tool",
		Long:  `A command line interface for the khata settlement API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the khata API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(outstandingCmd())
	rootCmd.AddCommand(settleCmd())
	rootCmd.AddCommand(clearCmd())
	rootCmd.AddCommand(reconcileCmd())

	return rootCmd
}

func outstandingCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "outstanding [debtor-id]",
		Short: "Show outstanding balances",
		Long:  `Shows one debtor's open entries, or every debtor of a kind that still owes money.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return getJSON(fmt.Sprintf("%s/api/v1/debtors/%s/outstanding", baseURL, args[0]))
			}
			if kind == "" {
				return fmt.Errorf("either a debtor ID or --kind is required")
			}
			return getJSON(fmt.Sprintf("%s/api/v1/outstanding?kind=%s", baseURL, kind))
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Debtor kind: worker or client")

	return cmd
}

func settleCmd() *cobra.Command {
	var (
		amount     string
		mode       string
		partnerRef string
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "settle <debtor-id>",
		Short: "Settle an amount against a debtor's open entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"amount": amount, "mode": mode}
			if partnerRef != "" {
				body["partner_ref"] = partnerRef
			}
			if notes != "" {
				body["notes"] = notes
			}
			return postJSON(fmt.Sprintf("%s/api/v1/debtors/%s/settlements", baseURL, args[0]), body)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Amount to settle (required)")
	cmd.Flags().StringVar(&mode, "mode", "cash", "Payment mode: cash, upi, cheque, bank_transfer")
	cmd.Flags().StringVar(&partnerRef, "ref", "", "Partner reference")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func clearCmd() *cobra.Command {
	var (
		mode  string
		notes string
	)

	cmd := &cobra.Command{
		Use:   "clear <debtor-id>",
		Short: "Settle a debtor's entire outstanding balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"mode": mode}
			if notes != "" {
				body["notes"] = notes
			}
			return postJSON(fmt.Sprintf("%s/api/v1/debtors/%s/settlements/clear", baseURL, args[0]), body)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "cash", "Payment mode: cash, upi, cheque, bank_transfer")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [debtor-id]",
		Short: "Check cached outstanding against the ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := baseURL + "/api/v1/reconciliation"
			if len(args) == 1 {
				url += "/" + args[0]
			}
			return getJSON(url)
		},
	}
}

func getJSON(url string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func postJSON(url string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		fmt.Println(string(body))
	} else {
		printJSON(decoded)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", v)
		return
	}
	fmt.Println(string(out))
}
