/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/allbin/uartlog"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <port>",
	Short: "Display detailed information about a serial port",
	Long: `Display detailed information about a serial port including USB metadata.

Examples:
  uartlog info /dev/ttyO1
  uartlog info /dev/ttyUSB0

For USB adapters this also shows vendor/product IDs, the serial number and
the product string reported by the device.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		info, err := uartlog.GetPortInfo(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting port info: %v\n", err)
			os.Exit(1)
		}
		printPortInfo(cmd.OutOrStdout(), info)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printPortInfo(w io.Writer, info *uartlog.PortInfo) {
	fmt.Fprintf(w, "Port Information: %s\n\n", info.Path)
	fmt.Fprintf(w, "  Name:        %s\n", info.Name)
	fmt.Fprintf(w, "  Description: %s\n", info.Description)

	if !info.IsUSB {
		return
	}
	fmt.Fprintln(w, "\nUSB Device Information:")
	if info.VendorID != "" {
		fmt.Fprintf(w, "  Vendor ID:    %s\n", info.VendorID)
	}
	if info.ProductID != "" {
		fmt.Fprintf(w, "  Product ID:   %s\n", info.ProductID)
	}
	if info.SerialNumber != "" {
		fmt.Fprintf(w, "  Serial:       %s\n", info.SerialNumber)
	}
	if info.Product != "" {
		fmt.Fprintf(w, "  Product:      %s\n", info.Product)
	}
}
