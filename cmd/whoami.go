package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/wfdash/internal/format"
)

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the employee the agent is registered to",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showEmployee(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func showEmployee(ctx context.Context) {
	services, ok := loadServices()
	if !ok {
		return
	}

	info, err := services.Employee.Info(ctx)
	if err != nil {
		handleRequestError("employee info", err, services)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Name:            %s\n", info.EmployeeName)
	_, _ = fmt.Fprintf(deps.Stdout, "Employee ID:     %s\n", info.EmployeeID)
	_, _ = fmt.Fprintf(deps.Stdout, "Designation:     %s\n", format.OrDefault(info.Designation, "-"))
	if info.Department != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Department:      %s\n", info.Department)
	}
	if info.Email != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Email:           %s\n", info.Email)
	}
	if info.DeviceID != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Device:          %s\n", info.DeviceID)
	}
}
