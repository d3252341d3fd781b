package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-key/internal/utils"
)

func newGenCmd(a *app) *cobra.Command {
	var toClipboard bool

	cmd := &cobra.Command{
		Use:   "gen [length]",
		Short: "Generate a random password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			length := utils.DefaultPasswordLength
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid length %q", args[0])
				}
				length = n
			}

			password, err := utils.GeneratePassword(length)
			if err != nil {
				return err
			}
			return a.output(cmd, password, "password", toClipboard)
		},
	}

	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "copy to the clipboard instead of printing")
	return cmd
}
