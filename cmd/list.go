/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/allbin/uartlog"
	"github.com/allbin/uartlog/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List all available serial ports on the system.

This command scans for communication-capable serial devices including:
- USB serial adapters (ttyUSB*)
- USB CDC/ACM devices (ttyACM*)
- Standard serial ports (ttyS*)
- OMAP ports on BeagleBone boards (ttyO*)
- ARM/Raspberry Pi ports (ttyAMA*)

Virtual terminals and pseudo-terminals are excluded from the listing.`,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := uartlog.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		filterType, _ := cmd.Flags().GetString("filter")
		tableFormat, _ := cmd.Flags().GetBool("table")

		filteredPorts := filterPorts(ports, filterType)
		if len(filteredPorts) == 0 {
			if filterType != "" {
				fmt.Printf("No serial ports found matching filter: %s\n", filterType)
			} else {
				fmt.Println("No serial ports found")
			}
			return
		}

		if tableFormat {
			fmt.Printf("Found %d serial port(s):\n\n", len(filteredPorts))
			fmt.Println(renderTable(portInfos(filteredPorts)))
		} else {
			for _, port := range filteredPorts {
				fmt.Println(port)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("filter", "f", "", "Filter by port type: usb, standard, omap, arm, all")
	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

// filterPorts filters the port list based on the specified filter type
func filterPorts(ports []string, filterType string) []string {
	if filterType == "" || filterType == "all" {
		return ports
	}

	var filtered []string
	for _, port := range ports {
		if matchesFilter(port, filterType) {
			filtered = append(filtered, port)
		}
	}
	return filtered
}

func matchesFilter(port, filterType string) bool {
	name := strings.ToLower(port[strings.LastIndex(port, "/")+1:])
	switch strings.ToLower(filterType) {
	case "usb":
		return strings.HasPrefix(name, "ttyusb") || strings.HasPrefix(name, "ttyacm")
	case "standard":
		return strings.HasPrefix(name, "ttys") && !strings.HasPrefix(name, "ttysac")
	case "omap":
		return strings.HasPrefix(name, "ttyo")
	case "arm":
		return strings.HasPrefix(name, "ttyama")
	}
	return false
}

func portInfos(ports []string) []*uartlog.PortInfo {
	infos := make([]*uartlog.PortInfo, 0, len(ports))
	for _, port := range ports {
		info, err := uartlog.GetPortInfo(port)
		if err != nil {
			info = &uartlog.PortInfo{Name: port, Path: port, Description: fmt.Sprintf("Error: %v", err)}
		}
		infos = append(infos, info)
	}
	return infos
}

const (
	columnKeyPort        = "port"
	columnKeyType        = "type"
	columnKeyDescription = "description"
	columnKeyUSB         = "usb"
)

// renderTable renders the port list as a static bubble-table
func renderTable(infos []*uartlog.PortInfo) string {
	columns := []table.Column{
		table.NewColumn(columnKeyPort, "Port", 15),
		table.NewColumn(columnKeyType, "Type", 18),
		table.NewColumn(columnKeyDescription, "Description", 24),
		table.NewColumn(columnKeyUSB, "USB", 12),
	}

	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		usb := ""
		if info.IsUSB {
			usb = info.VendorID + ":" + info.ProductID
		}
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyPort:        info.Name,
			columnKeyType:        getPortType(info.Name),
			columnKeyDescription: info.Description,
			columnKeyUSB:         usb,
		}))
	}

	return table.New(columns).
		WithRows(rows).
		HeaderStyle(styles.HeaderStyle).
		WithBaseStyle(lipgloss.NewStyle().Align(lipgloss.Left)).
		View()
}

// getPortType returns a more specific type classification for the port
func getPortType(name string) string {
	name = strings.ToLower(name)
	switch {
	case strings.HasPrefix(name, "ttyusb"):
		return "USB Serial"
	case strings.HasPrefix(name, "ttyacm"):
		return "USB CDC/ACM"
	case strings.HasPrefix(name, "ttyama"):
		return "ARM Serial"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial"
	case strings.HasPrefix(name, "ttysac"):
		return "Samsung Serial"
	case strings.HasPrefix(name, "ttyths"):
		return "Tegra Serial"
	case strings.HasPrefix(name, "ttyo"):
		return "OMAP Serial"
	case strings.HasPrefix(name, "ttys"):
		return "Standard Serial"
	default:
		return "Serial Port"
	}
}
