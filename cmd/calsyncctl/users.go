package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/calsync/calsync-server/internal/domain"
	"github.com/calsync/calsync-server/internal/service"
)

func newUsersCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage calendar owners",
	}

	var name, email string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, flags, func(i do.Injector) error {
				users := do.MustInvoke[*service.UserService](i)

				user, err := users.CreateUser(cmd.Context(), domain.NewUser{Name: name, Email: email})
				if err != nil {
					return err
				}

				return newPrinter(cmd, flags).print(user, func(w io.Writer) {
					fmt.Fprintf(w, "Created user %d (%s <%s>)\n", user.ID, user.Name, user.Email)
				})
			})
		},
	}
	create.Flags().StringVar(&name, "name", "", "Display name")
	create.Flags().StringVar(&email, "email", "", "Email address")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("email")

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, flags, func(i do.Injector) error {
				users, err := do.MustInvoke[*service.UserService](i).ListUsers(cmd.Context())
				if err != nil {
					return err
				}

				return newPrinter(cmd, flags).print(users, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCREATED")
					for _, u := range users {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.CreatedAt.Format(time.RFC3339))
					}
				})
			})
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}

func parseUserID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return id, nil
}
