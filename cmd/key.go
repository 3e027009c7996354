// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"

	"asksql/cli/internal/config"
	"asksql/cli/internal/keychain"
	"asksql/cli/internal/logging"
	"asksql/cli/internal/terminal"

	"github.com/spf13/cobra"
)

// keyCmd groups API key management.
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the model API key stored in the OS keychain",
	Long: `The key command stores or removes the API key used for the model endpoint.

GROQ_API_KEY and ASKSQL_API_KEY take precedence over the stored key.
Keychain storage is supported on macOS and Windows.`,
}

var keySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the API key in the OS keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			fmt.Println("❌ Secure storage is not available on this system.")
			fmt.Println("   Export GROQ_API_KEY instead.")
			return errReported
		}

		key, err := terminal.ReadSecret("Enter API key: ")
		if err != nil {
			return err
		}
		if key == "" {
			return errors.New("API key is required")
		}

		if err := km.SaveAPIKey(key); err != nil {
			fmt.Println("❌ Failed to save the API key securely.")
			return err
		}
		fmt.Println("✅ API key saved to the OS keychain")
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if km, err := keychain.GetManager(); err == nil {
			if err := km.ClearAPIKey(); err != nil {
				logging.Debugf("clear API key: %v", err)
			}
		}
		fmt.Println("✅ Stored API key removed")
		return nil
	},
}

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which API key would be used",
	RunE: func(cmd *cobra.Command, args []string) error {
		var keys config.KeyLoader
		if km, err := keychain.GetManager(); err == nil {
			keys = km
		}
		key, source, err := config.ResolveAPIKey(os.Getenv, keys)
		if err != nil {
			fmt.Println("⚠️  No API key configured")
			fmt.Println("   Set GROQ_API_KEY or run: asksql key set")
			return nil
		}
		fmt.Printf("Using API key from %s: %s\n", source, redactKey(key))
		return nil
	},
}

// redactKey keeps the last four characters of key.
func redactKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keySetCmd, keyClearCmd, keyStatusCmd)
}
