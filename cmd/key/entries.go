package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-key/internal/service"
	"github.com/MKhiriev/go-key/internal/vault"
)

func newListCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List all entries in the database",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withHandle(cmd, func(h *service.Handle) error {
				out, err := h.Render(format)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", vault.FormatText, "output format: text, json, yaml or toml")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	var (
		field       string
		toClipboard bool
	)

	cmd := &cobra.Command{
		Use:     "get <name>",
		Short:   "Print a field of an entry",
		Aliases: []string{"g"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withHandle(cmd, func(h *service.Handle) error {
				value, err := h.GetField(args[0], field)
				if err != nil {
					return err
				}
				return a.output(cmd, value, fmt.Sprintf("%s of %s", field, args[0]), toClipboard)
			})
		},
	}

	cmd.Flags().StringVarP(&field, "field", "f", vault.FieldPassword, "field to print")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "copy to the clipboard instead of printing")
	return cmd
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <field> [value]",
		Short: "Set a field of an entry, creating the entry if needed",
		Long: `Set a field of a root-level entry and save the database.
When value is omitted it is read from a masked prompt.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, field := args[0], args[1]

			return a.withHandle(cmd, func(h *service.Handle) error {
				var value string
				if len(args) == 3 {
					value = args[2]
				} else {
					var err error
					value, err = a.ui.PromptPassword(cmd.Context(), fmt.Sprintf("%s of %s:", field, name))
					if err != nil {
						return err
					}
				}
				return h.SetField(cmd.Context(), name, field, value)
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Short:   "Delete an entry",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withHandle(cmd, func(h *service.Handle) error {
				return h.Delete(cmd.Context(), args[0])
			})
		},
	}
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rename <name> <new-name>",
		Short:   "Rename an entry",
		Aliases: []string{"mv"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withHandle(cmd, func(h *service.Handle) error {
				return h.Rename(cmd.Context(), args[0], args[1])
			})
		},
	}
}

func newOTPCmd(a *app) *cobra.Command {
	var (
		field       string
		toClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "otp <name>",
		Short: "Print the current one-time password of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withHandle(cmd, func(h *service.Handle) error {
				code, err := h.OTP(args[0], field)
				if err != nil {
					return err
				}
				return a.output(cmd, code, "otp of "+args[0], toClipboard)
			})
		},
	}

	cmd.Flags().StringVarP(&field, "field", "f", vault.FieldOTP, "field holding the otp secret or otpauth:// url")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "copy to the clipboard instead of printing")
	return cmd
}

func newChooseCmd(a *app) *cobra.Command {
	var (
		field       string
		toClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "choose",
		Short: "Pick an entry interactively and print one of its fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withHandle(cmd, func(h *service.Handle) error {
				choices, err := h.Choices()
				if err != nil {
					return err
				}

				choice, err := a.ui.Choose(cmd.Context(), "Entries", choices)
				if err != nil {
					return err
				}

				value, err := h.FieldByUUID(choice.UUID, field)
				if err != nil {
					return err
				}
				return a.output(cmd, value, fmt.Sprintf("%s of %s", field, choice.Label()), toClipboard)
			})
		},
	}

	cmd.Flags().StringVarP(&field, "field", "f", vault.FieldPassword, "field to print")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "copy to the clipboard instead of printing")
	return cmd
}
