package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mixelka/chatadapter/internal/webhooks"
)

var secretLength int

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Generate a random WEBHOOK_SECRET",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		secret, err := webhooks.GenerateSecret(secretLength)
		if err != nil {
			return err
		}
		fmt.Println(secret)
		return nil
	},
}

func init() {
	secretCmd.Flags().IntVar(&secretLength, "length", 32, "secret length in characters")
}
